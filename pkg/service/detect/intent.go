package detect

import (
	"strings"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
)

// ClassifyIntent maps one message line to HIGH/MEDIUM/LOW. The intent score
// counts distinct incident keywords present in the line; the urgency score
// counts urgency keywords. HIGH needs both scores >= 1, MEDIUM needs intent
// only, anything else is LOW.
func (d *Detector) ClassifyIntent(line string) types.Confidence {
	lower := strings.ToLower(line)

	intentScore := 0
	for _, k := range d.vocab.IncidentKeywords {
		if strings.Contains(lower, k) {
			intentScore++
		}
	}

	urgencyScore := 0
	for _, k := range d.vocab.UrgencyKeywords {
		if strings.Contains(lower, k) {
			urgencyScore++
		}
	}

	switch {
	case intentScore >= 1 && urgencyScore >= 1:
		return types.ConfidenceHigh
	case intentScore >= 1:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}
