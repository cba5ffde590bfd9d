package detect

import "strings"

// ExtractAbstract infers a short one-line label for the incident (e.g.
// "WebUI Bug", "Service Outage"). Buckets are checked in order and the first
// match wins. Returns "" when no bucket matches.
func (d *Detector) ExtractAbstract(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)

	for i, bucket := range d.vocab.AbstractBuckets {
		for _, k := range bucket.Keywords {
			if strings.Contains(lower, k) {
				return bucket.Label
			}
		}
		for _, re := range d.bucketWords[i] {
			if re.MatchString(trimmed) {
				return bucket.Label
			}
		}
	}

	return ""
}
