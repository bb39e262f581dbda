package enums

import "fmt"

// ApprovalStatus tracks a manager's payroll decision on a sale or spiff.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

var validApprovalStatuses = []ApprovalStatus{
	ApprovalStatusPending,
	ApprovalStatusApproved,
	ApprovalStatusRejected,
}

// String implements fmt.Stringer.
func (a ApprovalStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ApprovalStatus.
func (a ApprovalStatus) IsValid() bool {
	for _, candidate := range validApprovalStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseApprovalStatus converts raw input into an ApprovalStatus.
func ParseApprovalStatus(value string) (ApprovalStatus, error) {
	for _, candidate := range validApprovalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid approval status %q", value)
}

// ApprovalKind distinguishes which entry type an approval covers.
type ApprovalKind string

const (
	ApprovalKindSale  ApprovalKind = "sale"
	ApprovalKindSpiff ApprovalKind = "spiff"
)

var validApprovalKinds = []ApprovalKind{
	ApprovalKindSale,
	ApprovalKindSpiff,
}

// IsValid reports whether the value is a known ApprovalKind.
func (a ApprovalKind) IsValid() bool {
	for _, candidate := range validApprovalKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseApprovalKind converts raw input into an ApprovalKind.
func ParseApprovalKind(value string) (ApprovalKind, error) {
	for _, candidate := range validApprovalKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid approval kind %q", value)
}
