package store

import (
	"database/sql"
	"fmt"

	"carelink/internal/models"
)

// CreateAnnouncement persists a broadcast. Announcements live in their own
// table so a restart never loses the latest one.
func CreateAnnouncement(db DBTX, senderID int64, title, body string) (int64, error) {
	result, err := db.Exec(`INSERT INTO announcements (sender_id, title, body) VALUES (?, ?, ?)`,
		senderID, title, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create announcement: %w", err)
	}
	return result.LastInsertId()
}

// LatestAnnouncement returns the newest row, or ErrNotFound when none has
// ever been sent.
func LatestAnnouncement(db DBTX) (*models.Announcement, error) {
	var a models.Announcement
	err := db.QueryRow(`SELECT id, sender_id, title, body, created_at
		FROM announcements ORDER BY created_at DESC, id DESC LIMIT 1`).
		Scan(&a.ID, &a.SenderID, &a.Title, &a.Body, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load latest announcement: %w", err)
	}
	return &a, nil
}
