package models

import (
	"database/sql"
	"time"
)

// PasswordResetRequest lifecycle: Pending -> {Approved | Rejected}, terminal.
const (
	ResetStatusPending  = "Pending"
	ResetStatusApproved = "Approved"
	ResetStatusRejected = "Rejected"
)

// PasswordResetRequest is the model for the 'password_reset_requests' table.
// CandidateHash holds the bcrypt hash of the requested new password; on
// approval it is copied onto the account.
type PasswordResetRequest struct {
	ID            int64  `json:"id" db:"id"`
	UserID        int64  `json:"userId" db:"user_id"`
	Username      string `json:"username" db:"username"`
	CandidateHash string `json:"-" db:"candidate_hash"`
	Status        string `json:"status" db:"status"`

	ReviewedBy sql.NullInt64  `json:"reviewedBy,omitempty" db:"reviewed_by"`
	AdminName  sql.NullString `json:"adminName,omitempty" db:"admin_name"`
	AdminNote  sql.NullString `json:"adminNote,omitempty" db:"admin_note"`
	ReviewedAt sql.NullTime   `json:"reviewedAt,omitempty" db:"reviewed_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
