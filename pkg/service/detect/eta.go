package detect

import (
	"regexp"
	"strings"
)

// datePattern matches tokens like "21st May" or "3 June".
var datePattern = regexp.MustCompile(`\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]+`)

// ETADateLayout formats the date embedded in an EOD expression.
const ETADateLayout = "02 Jan 2006"

// ExtractETA detects a stated ETA. An end-of-day synonym expands to
// "EOD (<today>)" using the time the message is processed, not the message
// send time. Otherwise an ETA-introducing phrase ("by", "expected by", ...)
// followed by a date-like token yields that token. Returns "" when no ETA is
// stated.
func (d *Detector) ExtractETA(line string) string {
	lower := strings.ToLower(line)

	for _, eod := range d.vocab.EODKeywords {
		if strings.Contains(lower, eod) {
			return "EOD (" + d.now().Format(ETADateLayout) + ")"
		}
	}

	for _, phrase := range d.vocab.ETAPhrases {
		if strings.Contains(lower, phrase) {
			if m := datePattern.FindString(line); m != "" {
				return m
			}
			return ""
		}
	}

	return ""
}
