package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role labels stored on the roles table and carried in JWT claims.
// Authorization is enforced server-side by middleware, never by the
// frontend comparing label strings.
const (
	RolePIN             = "pin"
	RoleCSR             = "csr"
	RolePlatformManager = "platform_manager"
	RoleUserAdmin       = "user_admin"
)

// Account is the model for the 'accounts' table.
type Account struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	RoleID       int64  `json:"roleId" db:"role_id"`
	RoleLabel    string `json:"role" db:"role_label"`
	Suspended    bool   `json:"suspended" db:"suspended"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Role is the model for the 'roles' table.
type Role struct {
	ID        int64     `json:"id" db:"id"`
	Label     string    `json:"label" db:"label"`
	Suspended bool      `json:"suspended" db:"suspended"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
