package models

import "time"

// Feedback is one rating+comment per (request, csr, pin) triple, created
// after the request completes.
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	RequestID int64     `json:"requestId" db:"request_id"`
	CsrID     int64     `json:"csrId" db:"csr_id"`
	PinID     int64     `json:"pinId" db:"pin_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Joined for CSR-facing lists.
	RequestTitle string `json:"requestTitle,omitempty" db:"request_title"`
	PinUsername  string `json:"pinUsername,omitempty" db:"pin_username"`
}
