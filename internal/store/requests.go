package store

import (
	"database/sql"
	"fmt"
	"time"

	"carelink/internal/models"
)

const requestColumns = `
	pr.id, pr.reference, pr.pin_id, pr.csr_id, pr.title, pr.service_type_id,
	pr.message, pr.location_id, pr.urgency_id, pr.status, pr.view_count,
	pr.shortlist_count, pr.created_at, pr.updated_at,
	p.username, c.username, st.name, l.label, u.label`

const requestJoins = `
	FROM pin_requests pr
	JOIN accounts p ON pr.pin_id = p.id
	LEFT JOIN accounts c ON pr.csr_id = c.id
	JOIN service_types st ON pr.service_type_id = st.id
	JOIN locations l ON pr.location_id = l.id
	JOIN urgency_levels u ON pr.urgency_id = u.id`

func scanRequestFields(req *models.PinRequest, scan func(dest ...interface{}) error) error {
	return scan(&req.ID, &req.Reference, &req.PinID, &req.CsrID, &req.Title,
		&req.ServiceTypeID, &req.Message, &req.LocationID, &req.UrgencyID,
		&req.Status, &req.ViewCount, &req.ShortlistCount, &req.CreatedAt,
		&req.UpdatedAt, &req.PinUsername, &req.CsrUsername, &req.ServiceType,
		&req.LocationName, &req.UrgencyLabel)
}

func queryRequests(db DBTX, query string, args ...interface{}) ([]*models.PinRequest, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.PinRequest
	for rows.Next() {
		var req models.PinRequest
		if err := scanRequestFields(&req, rows.Scan); err != nil {
			return nil, err
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

// CreateRequest inserts a new PIN request in the Available state and
// returns its id.
func CreateRequest(db DBTX, req *models.PinRequest) (int64, error) {
	result, err := db.Exec(`INSERT INTO pin_requests
		(reference, pin_id, title, service_type_id, message, location_id, urgency_id, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.Reference, req.PinID, req.Title, req.ServiceTypeID, req.Message,
		req.LocationID, req.UrgencyID, models.RequestStatusAvailable)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	return result.LastInsertId()
}

func GetRequestByID(db DBTX, id int64) (*models.PinRequest, error) {
	row := db.QueryRow(`SELECT`+requestColumns+requestJoins+` WHERE pr.id = ?`, id)
	var req models.PinRequest
	if err := scanRequestFields(&req, row.Scan); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func ListRequestsByPin(db DBTX, pinID int64) ([]*models.PinRequest, error) {
	return queryRequests(db, `SELECT`+requestColumns+requestJoins+`
		WHERE pr.pin_id = ? ORDER BY pr.created_at DESC`, pinID)
}

// ListOpenRequests returns requests a CSR can still engage with: Available
// status and no assigned CSR.
func ListOpenRequests(db DBTX) ([]*models.PinRequest, error) {
	return queryRequests(db, `SELECT`+requestColumns+requestJoins+`
		WHERE pr.status = ? AND pr.csr_id IS NULL
		ORDER BY pr.created_at DESC`, models.RequestStatusAvailable)
}

// ListRequestsInRange returns requests created in [from, to), optionally
// filtered to one service type, for the report data export.
func ListRequestsInRange(db DBTX, from, to time.Time, serviceTypeID int64) ([]*models.PinRequest, error) {
	query := `SELECT` + requestColumns + requestJoins + `
		WHERE pr.created_at >= ? AND pr.created_at < ?`
	args := []interface{}{from, to}
	if serviceTypeID > 0 {
		query += ` AND pr.service_type_id = ?`
		args = append(args, serviceTypeID)
	}
	query += ` ORDER BY pr.created_at ASC`
	return queryRequests(db, query, args...)
}

// UpdateRequest edits a request. The csr_id IS NULL guard keeps edits to
// the pre-assignment window; once a CSR is accepted the request is frozen.
func UpdateRequest(db DBTX, id, pinID int64, title string, serviceTypeID int64, message string, locationID, urgencyID int64) error {
	result, err := db.Exec(`UPDATE pin_requests
		SET title = ?, service_type_id = ?, message = ?, location_id = ?, urgency_id = ?
		WHERE id = ? AND pin_id = ? AND csr_id IS NULL`,
		title, serviceTypeID, message, locationID, urgencyID, id, pinID)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	return requireRow(result)
}

// DeleteRequest removes a request, again only while unassigned.
func DeleteRequest(db DBTX, id, pinID int64) error {
	result, err := db.Exec(`DELETE FROM pin_requests
		WHERE id = ? AND pin_id = ? AND csr_id IS NULL`, id, pinID)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	return requireRow(result)
}

func IncrementViewCount(db DBTX, id int64) error {
	result, err := db.Exec(`UPDATE pin_requests SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return requireRow(result)
}

func IncrementShortlistCount(db DBTX, id int64) error {
	result, err := db.Exec(`UPDATE pin_requests SET shortlist_count = shortlist_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment shortlist count: %w", err)
	}
	return requireRow(result)
}
