package detect

import "regexp"

var linkPattern = regexp.MustCompile(`(?i)https?://[^\s<>]+`)

// ExtractLinks returns all URLs found in the line, in order of appearance.
func (d *Detector) ExtractLinks(line string) []string {
	return linkPattern.FindAllString(line, -1)
}
