package models

import (
	"database/sql"
	"time"
)

// Notification types fired by lifecycle transitions.
const (
	NotificationShortlist  = "shortlist"
	NotificationInterested = "interested"
	NotificationAccepted   = "accepted"
	NotificationRejected   = "rejected"
	NotificationFeedback   = "feedback"
)

// Notification is the model for the 'notifications' table.
type Notification struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"userId" db:"user_id"`
	Type      string        `json:"type" db:"type"`
	Message   string        `json:"message" db:"message"`
	RequestID sql.NullInt64 `json:"requestId,omitempty" db:"request_id"`
	IsRead    bool          `json:"isRead" db:"is_read"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}
