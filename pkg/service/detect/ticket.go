package detect

import "regexp"

var (
	ticketURLPattern = regexp.MustCompile(`https?://[^\s]+/browse/([A-Z]{2,10}-\d+)`)
	ticketKeyPattern = regexp.MustCompile(`\b[A-Z]{2,10}-\d+\b`)
)

// ExtractTicket detects an issue tracker reference: either a browse URL
// (capturing the key) or a bare KEY-123 token. The URL form takes priority.
// Returns "" when the line has neither.
func (d *Detector) ExtractTicket(line string) string {
	if m := ticketURLPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := ticketKeyPattern.FindString(line); m != "" {
		return m
	}
	return ""
}
