package store

import (
	"database/sql"
	"fmt"

	"carelink/internal/models"
)

// AddNotification queues a typed notification. Lifecycle code calls this
// inside the same transaction as the state change it announces.
func AddNotification(db DBTX, userID int64, ntype, message string, requestID int64) error {
	var reqID sql.NullInt64
	if requestID != 0 {
		reqID = sql.NullInt64{Int64: requestID, Valid: true}
	}

	_, err := db.Exec(`INSERT INTO notifications (user_id, type, message, request_id, is_read)
		VALUES (?, ?, ?, ?, 0)`,
		userID, ntype, message, reqID)
	if err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

// ListNotifications returns a user's notifications, unread and newest first.
func ListNotifications(db DBTX, userID int64) ([]*models.Notification, error) {
	rows, err := db.Query(`SELECT id, user_id, type, message, request_id, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY is_read ASC, created_at DESC
		LIMIT 50`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.RequestID,
			&n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flips the read flag. The user_id condition stops a
// user marking someone else's notification.
func MarkNotificationRead(db DBTX, id, userID int64) error {
	result, err := db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return requireRow(result)
}
