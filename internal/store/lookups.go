package store

import (
	"fmt"

	"carelink/internal/models"
)

func ListLocations(db DBTX) ([]*models.Location, error) {
	rows, err := db.Query(`SELECT id, label FROM locations ORDER BY label ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.Label); err != nil {
			return nil, err
		}
		locations = append(locations, &loc)
	}
	return locations, rows.Err()
}

func ListUrgencyLevels(db DBTX) ([]*models.UrgencyLevel, error) {
	rows, err := db.Query(`SELECT id, label FROM urgency_levels ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list urgency levels: %w", err)
	}
	defer rows.Close()

	var levels []*models.UrgencyLevel
	for rows.Next() {
		var lvl models.UrgencyLevel
		if err := rows.Scan(&lvl.ID, &lvl.Label); err != nil {
			return nil, err
		}
		levels = append(levels, &lvl)
	}
	return levels, rows.Err()
}
