package models

import (
	"database/sql"
	"time"
)

// PinRequest lifecycle: Available -> Pending (a CSR was accepted) -> Completed.
const (
	RequestStatusAvailable = "Available"
	RequestStatusPending   = "Pending"
	RequestStatusCompleted = "Completed"
)

// PinRequest is the model for the 'pin_requests' table.
type PinRequest struct {
	ID        int64  `json:"id" db:"id"`
	Reference string `json:"reference" db:"reference"`
	PinID     int64  `json:"pinId" db:"pin_id"`

	// CsrID is NULL until the owning PIN accepts a volunteer.
	CsrID sql.NullInt64 `json:"csrId" db:"csr_id"`

	Title         string `json:"title" db:"title"`
	ServiceTypeID int64  `json:"serviceTypeId" db:"service_type_id"`
	Message       string `json:"message" db:"message"`
	LocationID    int64  `json:"locationId" db:"location_id"`
	UrgencyID     int64  `json:"urgencyId" db:"urgency_id"`
	Status        string `json:"status" db:"status"`

	ViewCount      int `json:"viewCount" db:"view_count"`
	ShortlistCount int `json:"shortlistCount" db:"shortlist_count"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joined labels for list views (not columns on pin_requests).
	PinUsername  string         `json:"pinUsername,omitempty" db:"pin_username"`
	CsrUsername  sql.NullString `json:"csrUsername,omitempty" db:"csr_username"`
	ServiceType  string         `json:"serviceType,omitempty" db:"service_type"`
	LocationName string         `json:"location,omitempty" db:"location_name"`
	UrgencyLabel string         `json:"urgency,omitempty" db:"urgency_label"`
}
