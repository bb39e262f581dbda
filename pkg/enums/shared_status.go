package enums

import "fmt"

// SharedStatus tracks the recipient's response on a shared sale.
// Accepted and rejected are terminal.
type SharedStatus string

const (
	SharedStatusPending  SharedStatus = "pending"
	SharedStatusAccepted SharedStatus = "accepted"
	SharedStatusRejected SharedStatus = "rejected"
)

var validSharedStatuses = []SharedStatus{
	SharedStatusPending,
	SharedStatusAccepted,
	SharedStatusRejected,
}

// String implements fmt.Stringer.
func (s SharedStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SharedStatus.
func (s SharedStatus) IsValid() bool {
	for _, candidate := range validSharedStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s SharedStatus) IsTerminal() bool {
	return s == SharedStatusAccepted || s == SharedStatusRejected
}

// ParseSharedStatus converts raw input into a SharedStatus.
func ParseSharedStatus(value string) (SharedStatus, error) {
	for _, candidate := range validSharedStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shared status %q", value)
}
