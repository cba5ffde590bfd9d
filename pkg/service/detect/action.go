package detect

import (
	"regexp"
	"strings"
)

var (
	// Slack sometimes delivers curly apostrophes
	curlyApostrophe = "’"

	leadingIWillPattern = regexp.MustCompile(`(?i)^\s*i'll\b`)
	leadingIPattern     = regexp.MustCompile(`(?i)^\s*i\b`)
)

// ExtractAction detects a strong "do this" / "I'm on it" statement and turns
// it into sender-attributed action text. Hedge phrases ("maybe", "i think",
// ...) suppress extraction entirely. A leading first-person subject is
// rewritten to the sender's mention token:
//
//	"I'll troubleshoot..."   -> "<@U123> will troubleshoot..."
//	"I will troubleshoot..." -> "<@U123> will troubleshoot..."
//
// Returns "" when no strong phrase matches.
func (d *Detector) ExtractAction(line, sender string) string {
	normalized := strings.ReplaceAll(line, curlyApostrophe, "'")
	lower := strings.ToLower(normalized)

	for _, soft := range d.vocab.SoftPhrases {
		if strings.Contains(lower, soft) {
			return ""
		}
	}

	for _, phrase := range d.vocab.StrongActionPhrases {
		if !strings.Contains(lower, phrase) {
			continue
		}

		if loc := leadingIWillPattern.FindStringIndex(normalized); loc != nil {
			return sender + " will" + normalized[loc[1]:]
		}
		if loc := leadingIPattern.FindStringIndex(normalized); loc != nil {
			return sender + normalized[loc[1]:]
		}
		return normalized
	}

	return ""
}
