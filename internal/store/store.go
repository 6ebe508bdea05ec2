// Package store is the data-access layer over the relational schema.
// Functions accept a DBTX so callers can run them standalone or inside a
// transaction; multi-table lifecycle mutations (engagement.go, resets.go)
// must be given a *sql.Tx.
package store

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// DBTX is implemented by both *sql.DB and *sql.Tx.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

var (
	ErrNotFound         = errors.New("store: not found")
	ErrDuplicate        = errors.New("store: duplicate entry")
	ErrAlreadyProcessed = errors.New("store: already processed")
	ErrAlreadyAssigned  = errors.New("store: request already assigned")
	ErrNotAssigned      = errors.New("store: request has no assigned csr")
)

// IsDuplicate reports whether err is a uniqueness violation, classified by
// MySQL error number rather than message text.
func IsDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, ErrDuplicate)
}
