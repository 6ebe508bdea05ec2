package store

import (
	"database/sql"
	"fmt"

	"carelink/internal/models"
)

// CreateFeedback records one rating+comment for a completed request. The
// (request, csr, pin) uniqueness lives on the table; callers should map a
// duplicate to a conflict via IsDuplicate. The CSR receives a feedback
// notification in the same transaction.
func CreateFeedback(tx *sql.Tx, fb *models.Feedback) (int64, error) {
	var status string
	var csrID sql.NullInt64
	err := tx.QueryRow(`SELECT status, csr_id FROM pin_requests WHERE id = ? AND pin_id = ?`,
		fb.RequestID, fb.PinID).Scan(&status, &csrID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to load request for feedback: %w", err)
	}
	if status != models.RequestStatusCompleted || !csrID.Valid || csrID.Int64 != fb.CsrID {
		return 0, ErrNotAssigned
	}

	result, err := tx.Exec(`INSERT INTO feedback (request_id, csr_id, pin_id, rating, comment)
		VALUES (?, ?, ?, ?, ?)`,
		fb.RequestID, fb.CsrID, fb.PinID, fb.Rating, fb.Comment)
	if err != nil {
		return 0, fmt.Errorf("failed to create feedback: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	message := fmt.Sprintf("You received a %d-star rating", fb.Rating)
	if err := AddNotification(tx, fb.CsrID, models.NotificationFeedback, message, fb.RequestID); err != nil {
		return 0, err
	}
	return id, nil
}

// ListFeedbackForCsr returns feedback received by a CSR, newest first.
func ListFeedbackForCsr(db DBTX, csrID int64) ([]*models.Feedback, error) {
	rows, err := db.Query(`SELECT f.id, f.request_id, f.csr_id, f.pin_id, f.rating,
		f.comment, f.created_at, pr.title, a.username
		FROM feedback f
		JOIN pin_requests pr ON f.request_id = pr.id
		JOIN accounts a ON f.pin_id = a.id
		WHERE f.csr_id = ? ORDER BY f.created_at DESC`, csrID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []*models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.RequestID, &fb.CsrID, &fb.PinID, &fb.Rating,
			&fb.Comment, &fb.CreatedAt, &fb.RequestTitle, &fb.PinUsername); err != nil {
			return nil, err
		}
		feedback = append(feedback, &fb)
	}
	return feedback, rows.Err()
}
