package domain

import "time"

// NotificationKind enumerates the mutations that produce a notification.
type NotificationKind string

const (
	NotificationFollow  NotificationKind = "follow"
	NotificationLike    NotificationKind = "like"
	NotificationComment NotificationKind = "comment"
)

type Notification struct {
	ID     int64
	FromID int64
	ToID   int64
	Kind   NotificationKind
	Read   bool

	From Author

	CreatedAt time.Time
}
