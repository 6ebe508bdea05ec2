package models

import (
	"database/sql"
	"time"
)

// AuditLogEntry is append-only; the only mutation is an admin bulk clear.
type AuditLogEntry struct {
	ID        int64          `json:"id" db:"id"`
	ActorID   int64          `json:"actorId" db:"actor_id"`
	ActorName string         `json:"actorName" db:"actor_name"`
	Action    string         `json:"action" db:"action"`
	Target    string         `json:"target" db:"target"`
	Details   sql.NullString `json:"details,omitempty" db:"details"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}

// Announcement is a persisted platform-wide broadcast. The dashboard reads
// the newest row; rows never expire.
type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
