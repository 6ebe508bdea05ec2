package store

import (
	"database/sql"
	"fmt"
	"time"

	"carelink/internal/models"
)

// CreateResetRequest resolves the username to an account and inserts a
// Pending row carrying the bcrypt hash of the candidate password.
func CreateResetRequest(db DBTX, username, candidateHash string) (int64, error) {
	var userID int64
	err := db.QueryRow(`SELECT id FROM accounts WHERE username = ?`, username).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to resolve username: %w", err)
	}

	result, err := db.Exec(`INSERT INTO password_reset_requests
		(user_id, username, candidate_hash, status) VALUES (?, ?, ?, ?)`,
		userID, username, candidateHash, models.ResetStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to create reset request: %w", err)
	}
	return result.LastInsertId()
}

// ListResetRequests returns every reset request, pending first, newest
// within each group.
func ListResetRequests(db DBTX) ([]*models.PasswordResetRequest, error) {
	rows, err := db.Query(`SELECT id, user_id, username, candidate_hash, status,
		reviewed_by, admin_name, admin_note, reviewed_at, created_at
		FROM password_reset_requests
		ORDER BY status = ? DESC, created_at DESC`, models.ResetStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list reset requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.PasswordResetRequest
	for rows.Next() {
		var req models.PasswordResetRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Username, &req.CandidateHash,
			&req.Status, &req.ReviewedBy, &req.AdminName, &req.AdminNote,
			&req.ReviewedAt, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

// reviewReset stamps the terminal state onto a Pending row. The FOR UPDATE
// read plus the status guard makes a second approve/reject a 409, not a
// silent overwrite.
func reviewReset(tx *sql.Tx, id int64, status string, adminID int64, adminName, note string) (*models.PasswordResetRequest, error) {
	var req models.PasswordResetRequest
	err := tx.QueryRow(`SELECT id, user_id, username, candidate_hash, status
		FROM password_reset_requests WHERE id = ? FOR UPDATE`, id).
		Scan(&req.ID, &req.UserID, &req.Username, &req.CandidateHash, &req.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load reset request: %w", err)
	}
	if req.Status != models.ResetStatusPending {
		return nil, ErrAlreadyProcessed
	}

	_, err = tx.Exec(`UPDATE password_reset_requests
		SET status = ?, reviewed_by = ?, admin_name = ?, admin_note = ?, reviewed_at = ?
		WHERE id = ?`,
		status, adminID, adminName, note, time.Now(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to review reset request: %w", err)
	}
	return &req, nil
}

// ApproveReset marks the request Approved and copies the candidate hash
// onto the target account, in one transaction.
func ApproveReset(tx *sql.Tx, id, adminID int64, adminName, note string) error {
	req, err := reviewReset(tx, id, models.ResetStatusApproved, adminID, adminName, note)
	if err != nil {
		return err
	}
	return UpdateAccountPassword(tx, req.UserID, req.CandidateHash)
}

// RejectReset marks the request Rejected; the account is untouched.
func RejectReset(tx *sql.Tx, id, adminID int64, adminName, note string) error {
	_, err := reviewReset(tx, id, models.ResetStatusRejected, adminID, adminName, note)
	return err
}

// ClearResetRequests deletes every row regardless of state. Administrative
// housekeeping, not a lifecycle transition.
func ClearResetRequests(db DBTX) (int64, error) {
	result, err := db.Exec(`DELETE FROM password_reset_requests`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear reset requests: %w", err)
	}
	return result.RowsAffected()
}
