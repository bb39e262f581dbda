package enums

import "fmt"

// NotificationType identifies what a shared-sale notification announces.
type NotificationType string

const (
	NotificationTypeSharedSalePending  NotificationType = "shared_sale_pending"
	NotificationTypeSharedSaleAccepted NotificationType = "shared_sale_accepted"
	NotificationTypeSharedSaleRejected NotificationType = "shared_sale_rejected"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeSharedSalePending,
	NotificationTypeSharedSaleAccepted,
	NotificationTypeSharedSaleRejected,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
