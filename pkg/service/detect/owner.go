package detect

import (
	"strings"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
)

// DetectOwnerQuestion reports whether the line asks someone to take ownership
// ("can you take this" and friends).
func (d *Detector) DetectOwnerQuestion(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range d.vocab.AssignmentQuestionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// IsOwnerConfirmation reports whether the line, lower-cased and trimmed, is an
// exact acceptance reply to a pending ownership request.
func (d *Detector) IsOwnerConfirmation(line string) bool {
	normalized := strings.ToLower(strings.TrimSpace(line))
	for _, reply := range d.vocab.OwnerConfirmationReplies {
		if normalized == reply {
			return true
		}
	}
	return false
}

// ExtractOwner detects an explicit or implicit ownership claim. When an
// ownership phrase matches, the first mention in the line wins; without a
// mention, the claim is attributed to the sender. As a secondary rule a line
// containing the literal word "owner" together with a mention assigns that
// mention. Returns "" when neither rule matches.
func (d *Detector) ExtractOwner(line, sender string) string {
	lower := strings.ToLower(line)

	for _, phrase := range d.vocab.OwnerAssignmentPhrases {
		if strings.Contains(lower, phrase) {
			if mentions := model.Mentions(line); len(mentions) > 0 {
				return model.Mention(mentions[0])
			}
			return sender
		}
	}

	if strings.Contains(lower, "owner") {
		if mentions := model.Mentions(line); len(mentions) > 0 {
			return model.Mention(mentions[0])
		}
	}

	return ""
}
