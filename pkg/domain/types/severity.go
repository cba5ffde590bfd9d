package types

// Severity represents the incident severity level. Every detected incident
// starts at the default severity; no detector changes it yet.
type Severity string

const (
	SeverityP0 Severity = "P0"
	SeverityP1 Severity = "P1"
	SeverityP2 Severity = "P2"
	SeverityP3 Severity = "P3"
)

// DefaultSeverity is assigned to every newly detected incident.
const DefaultSeverity = SeverityP1

// AllSeverities returns all valid severity levels
func AllSeverities() []Severity {
	return []Severity{
		SeverityP0,
		SeverityP1,
		SeverityP2,
		SeverityP3,
	}
}

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityP0, SeverityP1, SeverityP2, SeverityP3:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}
