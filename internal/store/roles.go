package store

import (
	"database/sql"
	"fmt"

	"carelink/internal/models"
)

func CreateRole(db DBTX, label string) (int64, error) {
	result, err := db.Exec(`INSERT INTO roles (label, suspended) VALUES (?, 0)`, label)
	if err != nil {
		return 0, fmt.Errorf("failed to create role: %w", err)
	}
	return result.LastInsertId()
}

func GetRoleByLabel(db DBTX, label string) (*models.Role, error) {
	var role models.Role
	err := db.QueryRow(`SELECT id, label, suspended, created_at FROM roles WHERE label = ?`,
		label).Scan(&role.ID, &role.Label, &role.Suspended, &role.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func ListRoles(db DBTX) ([]*models.Role, error) {
	rows, err := db.Query(`SELECT id, label, suspended, created_at FROM roles ORDER BY label ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Label, &role.Suspended, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

func SetRoleSuspended(db DBTX, id int64, suspended bool) error {
	result, err := db.Exec(`UPDATE roles SET suspended = ? WHERE id = ?`, suspended, id)
	if err != nil {
		return fmt.Errorf("failed to set role suspension: %w", err)
	}
	return requireRow(result)
}

func DeleteRole(db DBTX, id int64) error {
	result, err := db.Exec(`DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	return requireRow(result)
}
