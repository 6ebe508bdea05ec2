package store

import (
	"fmt"

	"carelink/internal/models"

	"github.com/gosimple/slug"
)

// CreateServiceType inserts a new type, deriving the URL-safe slug from
// the name. Both name and slug are unique.
func CreateServiceType(db DBTX, name string) (int64, error) {
	result, err := db.Exec(`INSERT INTO service_types (name, slug, deleted) VALUES (?, ?, 0)`,
		name, slug.Make(name))
	if err != nil {
		return 0, fmt.Errorf("failed to create service type: %w", err)
	}
	return result.LastInsertId()
}

// ListServiceTypes returns active types, or every type when includeDeleted
// is set (the platform-manager view shows soft-deleted rows for restore).
func ListServiceTypes(db DBTX, includeDeleted bool) ([]*models.ServiceType, error) {
	query := `SELECT id, name, slug, deleted, created_at FROM service_types`
	if !includeDeleted {
		query += ` WHERE deleted = 0`
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	defer rows.Close()

	var types []*models.ServiceType
	for rows.Next() {
		var st models.ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.Slug, &st.Deleted, &st.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, &st)
	}
	return types, rows.Err()
}

// UpdateServiceType renames a type; the slug follows the new name.
func UpdateServiceType(db DBTX, id int64, name string) error {
	result, err := db.Exec(`UPDATE service_types SET name = ?, slug = ? WHERE id = ?`,
		name, slug.Make(name), id)
	if err != nil {
		return fmt.Errorf("failed to update service type: %w", err)
	}
	return requireRow(result)
}

func SetServiceTypeDeleted(db DBTX, id int64, deleted bool) error {
	result, err := db.Exec(`UPDATE service_types SET deleted = ? WHERE id = ?`, deleted, id)
	if err != nil {
		return fmt.Errorf("failed to flag service type: %w", err)
	}
	return requireRow(result)
}

// ReassignRequests moves every request from one service type to another and
// returns how many rows moved. Run inside a transaction together with the
// soft delete of the source type.
func ReassignRequests(db DBTX, fromID, toID int64) (int64, error) {
	result, err := db.Exec(`UPDATE pin_requests SET service_type_id = ? WHERE service_type_id = ?`,
		toID, fromID)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign requests: %w", err)
	}
	return result.RowsAffected()
}
