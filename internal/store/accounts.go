package store

import (
	"database/sql"
	"fmt"
	"strings"

	"carelink/internal/models"
)

// CreateAccount inserts a new account and returns its id.
func CreateAccount(db DBTX, username, passwordHash string, roleID int64) (int64, error) {
	result, err := db.Exec(`INSERT INTO accounts (username, password_hash, role_id, suspended)
	                        VALUES (?, ?, ?, 0)`,
		username, passwordHash, roleID)
	if err != nil {
		return 0, fmt.Errorf("failed to create account: %w", err)
	}
	return result.LastInsertId()
}

const accountColumns = `
	a.id, a.username, a.password_hash, a.role_id, r.label, a.suspended,
	a.created_at, a.updated_at`

func scanAccount(row *sql.Row) (*models.Account, error) {
	var acc models.Account
	err := row.Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.RoleID,
		&acc.RoleLabel, &acc.Suspended, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// GetAccountByUsername returns the account with its role label joined in.
func GetAccountByUsername(db DBTX, username string) (*models.Account, error) {
	row := db.QueryRow(`SELECT`+accountColumns+`
		FROM accounts a JOIN roles r ON a.role_id = r.id
		WHERE a.username = ?`, username)
	return scanAccount(row)
}

func GetAccountByID(db DBTX, id int64) (*models.Account, error) {
	row := db.QueryRow(`SELECT`+accountColumns+`
		FROM accounts a JOIN roles r ON a.role_id = r.id
		WHERE a.id = ?`, id)
	return scanAccount(row)
}

// SearchAccounts filters by a keyword over username and role label, and
// optionally by suspended status ("active" / "suspended" / "").
func SearchAccounts(db DBTX, keyword, status string) ([]*models.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts a JOIN roles r ON a.role_id = r.id`

	var conds []string
	var args []interface{}
	if keyword != "" {
		conds = append(conds, "(a.username LIKE ? OR r.label LIKE ?)")
		like := "%" + keyword + "%"
		args = append(args, like, like)
	}
	switch status {
	case "active":
		conds = append(conds, "a.suspended = 0")
	case "suspended":
		conds = append(conds, "a.suspended = 1")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.username ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var acc models.Account
		if err := rows.Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.RoleID,
			&acc.RoleLabel, &acc.Suspended, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

// UpdateAccount changes the username and role of an account.
func UpdateAccount(db DBTX, id int64, username string, roleID int64) error {
	result, err := db.Exec(`UPDATE accounts SET username = ?, role_id = ? WHERE id = ?`,
		username, roleID, id)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireRow(result)
}

// UpdateAccountPassword stores a new password hash.
func UpdateAccountPassword(db DBTX, id int64, passwordHash string) error {
	result, err := db.Exec(`UPDATE accounts SET password_hash = ? WHERE id = ?`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update account password: %w", err)
	}
	return requireRow(result)
}

func SetAccountSuspended(db DBTX, id int64, suspended bool) error {
	result, err := db.Exec(`UPDATE accounts SET suspended = ? WHERE id = ?`, suspended, id)
	if err != nil {
		return fmt.Errorf("failed to set account suspension: %w", err)
	}
	return requireRow(result)
}

func DeleteAccount(db DBTX, id int64) error {
	result, err := db.Exec(`DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRow(result)
}

// requireRow maps a zero-row mutation to ErrNotFound.
func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
