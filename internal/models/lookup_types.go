package models

import "time"

// ServiceType is the model for the 'service_types' table.
// Deleted is a soft flag so requests keep a valid reference; a type is
// reassigned and then removed via the platform-manager endpoints. Slug is
// the URL-safe form of the name, derived by the store on create/update.
type ServiceType struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Deleted   bool      `json:"deleted" db:"deleted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Location and UrgencyLevel are plain lookup tables.
type Location struct {
	ID    int64  `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
}

type UrgencyLevel struct {
	ID    int64  `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
}
