package models

import "time"

// NotificationKind drives banner styling.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationWarning NotificationKind = "warning"
	NotificationError   NotificationKind = "error"
)

// Notification is the transient banner message. Token increases with every
// message posted in a workspace; only a clear request carrying the current
// token removes the banner.
type Notification struct {
	Token    uint64           `json:"token"`
	Kind     NotificationKind `json:"kind"`
	Message  string           `json:"message"`
	PostedAt time.Time        `json:"posted_at"`
}
