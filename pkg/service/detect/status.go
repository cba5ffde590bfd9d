package detect

import "strings"

// ExtractStatus maps status phrases (investigating, fix in progress, resolved,
// ...) to a normalized status label. The first matching group wins. Returns ""
// when no phrase matches.
func (d *Detector) ExtractStatus(line string) string {
	lower := strings.ToLower(line)

	for _, group := range d.vocab.StatusGroups {
		for _, phrase := range group.Phrases {
			if strings.Contains(lower, phrase) {
				return group.Label
			}
		}
	}

	return ""
}
