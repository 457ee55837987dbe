package domain

import "time"

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a transient, user-visible message.
type Notice struct {
	Level   NoticeLevel
	Source  string
	Message string
	At      time.Time
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(n Notice)
}
