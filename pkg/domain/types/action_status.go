package types

import "fmt"

// ActionStatus represents the status of an action item in an incident
type ActionStatus string

const (
	ActionStatusOpen ActionStatus = "open"
	ActionStatusDone ActionStatus = "done"
)

// AllActionStatuses returns all valid action statuses
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusOpen,
		ActionStatusDone,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusOpen, ActionStatusDone:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating anything invalid as open. Legacy
// summaries stored actions without a status field.
func (s ActionStatus) Normalize() ActionStatus {
	if !s.IsValid() {
		return ActionStatusOpen
	}
	return s
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid action status: %s", s)
	}
	return status, nil
}
