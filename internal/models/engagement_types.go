package models

import "time"

// CsrOffer lifecycle: Pending -> {Accepted | Rejected}. Accepted is terminal
// for the winning CSR until the request itself completes, which moves the
// winning offer to Completed. Rejected is terminal for everyone else.
const (
	OfferStatusPending   = "Pending"
	OfferStatusAccepted  = "Accepted"
	OfferStatusRejected  = "Rejected"
	OfferStatusCompleted = "Completed"
)

// CsrInterest marks a CSR's declared interest in a request. The paired
// CsrOffer row is the record that actually drives acceptance and
// notifications; interest is the lighter-weight half.
type CsrInterest struct {
	ID        int64     `json:"id" db:"id"`
	CsrID     int64     `json:"csrId" db:"csr_id"`
	RequestID int64     `json:"requestId" db:"request_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CsrOffer is the model for the 'csr_offers' table.
type CsrOffer struct {
	ID        int64     `json:"id" db:"id"`
	CsrID     int64     `json:"csrId" db:"csr_id"`
	RequestID int64     `json:"requestId" db:"request_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joined for CSR-facing lists.
	RequestTitle  string `json:"requestTitle,omitempty" db:"request_title"`
	RequestStatus string `json:"requestStatus,omitempty" db:"request_status"`
}

// ShortlistEntry is a CSR's personal bookmark, independent of the offer
// lifecycle.
type ShortlistEntry struct {
	ID        int64     `json:"id" db:"id"`
	CsrID     int64     `json:"csrId" db:"csr_id"`
	RequestID int64     `json:"requestId" db:"request_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
