package store

import (
	"database/sql"
	"fmt"

	"carelink/internal/models"

	"github.com/apex/log"
)

// AddAuditEntry appends to the audit log. Failures are logged and returned
// but callers generally treat them as non-fatal; the admin action itself
// has already happened.
func AddAuditEntry(db DBTX, actorID int64, actorName, action, target, details string) error {
	var nullDetails sql.NullString
	if details != "" {
		nullDetails = sql.NullString{String: details, Valid: true}
	}

	_, err := db.Exec(`INSERT INTO audit_log (actor_id, actor_name, action, target, details)
		VALUES (?, ?, ?, ?, ?)`,
		actorID, actorName, action, target, nullDetails)
	if err != nil {
		log.WithError(err).WithField("action", action).Error("audit append failed")
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns the log newest first.
func ListAuditEntries(db DBTX) ([]*models.AuditLogEntry, error) {
	rows, err := db.Query(`SELECT id, actor_id, actor_name, action, target, details, created_at
		FROM audit_log ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorName, &e.Action, &e.Target,
			&e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// ClearAuditLog deletes the whole log and returns how many rows went.
func ClearAuditLog(db DBTX) (int64, error) {
	result, err := db.Exec(`DELETE FROM audit_log`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear audit log: %w", err)
	}
	return result.RowsAffected()
}
