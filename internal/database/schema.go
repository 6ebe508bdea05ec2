package database

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// InitSchema creates the carelink tables if they don't exist. It is safe to
// run on every startup.
func InitSchema(db *sql.DB) error {
	log.Info("initializing carelink database schema...")

	tables := []struct {
		name string
		ddl  string
	}{
		{"roles", `
	CREATE TABLE IF NOT EXISTS roles(
		id BIGINT NOT NULL AUTO_INCREMENT,
		label VARCHAR(64) NOT NULL,
		suspended TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX label_unique (label)
	)`},
		{"accounts", `
	CREATE TABLE IF NOT EXISTS accounts(
		id BIGINT NOT NULL AUTO_INCREMENT,
		username VARCHAR(128) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role_id BIGINT NOT NULL,
		suspended TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX username_unique (username),
		FOREIGN KEY (role_id) REFERENCES roles(id)
	)`},
		{"service_types", `
	CREATE TABLE IF NOT EXISTS service_types(
		id BIGINT NOT NULL AUTO_INCREMENT,
		name VARCHAR(128) NOT NULL,
		slug VARCHAR(128) NOT NULL,
		deleted TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX name_unique (name),
		UNIQUE INDEX slug_unique (slug)
	)`},
		{"locations", `
	CREATE TABLE IF NOT EXISTS locations(
		id BIGINT NOT NULL AUTO_INCREMENT,
		label VARCHAR(128) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE INDEX label_unique (label)
	)`},
		{"urgency_levels", `
	CREATE TABLE IF NOT EXISTS urgency_levels(
		id BIGINT NOT NULL AUTO_INCREMENT,
		label VARCHAR(64) NOT NULL,
		PRIMARY KEY (id),
		UNIQUE INDEX label_unique (label)
	)`},
		{"pin_requests", `
	CREATE TABLE IF NOT EXISTS pin_requests(
		id BIGINT NOT NULL AUTO_INCREMENT,
		reference CHAR(36) NOT NULL,
		pin_id BIGINT NOT NULL,
		csr_id BIGINT NULL,
		title VARCHAR(255) NOT NULL,
		service_type_id BIGINT NOT NULL,
		message TEXT NOT NULL,
		location_id BIGINT NOT NULL,
		urgency_id BIGINT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Available',
		view_count INT NOT NULL DEFAULT 0,
		shortlist_count INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX reference_unique (reference),
		FOREIGN KEY (pin_id) REFERENCES accounts(id),
		FOREIGN KEY (csr_id) REFERENCES accounts(id),
		FOREIGN KEY (service_type_id) REFERENCES service_types(id),
		FOREIGN KEY (location_id) REFERENCES locations(id),
		FOREIGN KEY (urgency_id) REFERENCES urgency_levels(id)
	)`},
		{"csr_interests", `
	CREATE TABLE IF NOT EXISTS csr_interests(
		id BIGINT NOT NULL AUTO_INCREMENT,
		csr_id BIGINT NOT NULL,
		request_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX csr_request_unique (csr_id, request_id),
		FOREIGN KEY (csr_id) REFERENCES accounts(id),
		FOREIGN KEY (request_id) REFERENCES pin_requests(id)
	)`},
		{"csr_offers", `
	CREATE TABLE IF NOT EXISTS csr_offers(
		id BIGINT NOT NULL AUTO_INCREMENT,
		csr_id BIGINT NOT NULL,
		request_id BIGINT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX csr_request_unique (csr_id, request_id),
		FOREIGN KEY (csr_id) REFERENCES accounts(id),
		FOREIGN KEY (request_id) REFERENCES pin_requests(id)
	)`},
		{"csr_shortlists", `
	CREATE TABLE IF NOT EXISTS csr_shortlists(
		id BIGINT NOT NULL AUTO_INCREMENT,
		csr_id BIGINT NOT NULL,
		request_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX csr_request_unique (csr_id, request_id),
		FOREIGN KEY (csr_id) REFERENCES accounts(id),
		FOREIGN KEY (request_id) REFERENCES pin_requests(id)
	)`},
		{"notifications", `
	CREATE TABLE IF NOT EXISTS notifications(
		id BIGINT NOT NULL AUTO_INCREMENT,
		user_id BIGINT NOT NULL,
		type VARCHAR(32) NOT NULL,
		message VARCHAR(512) NOT NULL,
		request_id BIGINT NULL,
		is_read TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		INDEX user_idx (user_id)
	)`},
		{"feedback", `
	CREATE TABLE IF NOT EXISTS feedback(
		id BIGINT NOT NULL AUTO_INCREMENT,
		request_id BIGINT NOT NULL,
		csr_id BIGINT NOT NULL,
		pin_id BIGINT NOT NULL,
		rating INT NOT NULL,
		comment TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE INDEX triple_unique (request_id, csr_id, pin_id)
	)`},
		{"password_reset_requests", `
	CREATE TABLE IF NOT EXISTS password_reset_requests(
		id BIGINT NOT NULL AUTO_INCREMENT,
		user_id BIGINT NOT NULL,
		username VARCHAR(128) NOT NULL,
		candidate_hash VARCHAR(255) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Pending',
		reviewed_by BIGINT NULL,
		admin_name VARCHAR(128) NULL,
		admin_note VARCHAR(512) NULL,
		reviewed_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	)`},
		{"audit_log", `
	CREATE TABLE IF NOT EXISTS audit_log(
		id BIGINT NOT NULL AUTO_INCREMENT,
		actor_id BIGINT NOT NULL,
		actor_name VARCHAR(128) NOT NULL,
		action VARCHAR(64) NOT NULL,
		target VARCHAR(255) NOT NULL,
		details VARCHAR(1024) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	)`},
		{"announcements", `
	CREATE TABLE IF NOT EXISTS announcements(
		id BIGINT NOT NULL AUTO_INCREMENT,
		sender_id BIGINT NOT NULL,
		title VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	)`},
	}

	for _, t := range tables {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}

	log.Info("database schema created/verified")
	return nil
}

// SeedLookups inserts the fixed role rows and default lookup values.
// INSERT IGNORE keeps reruns harmless.
func SeedLookups(db *sql.DB) error {
	for _, label := range []string{"pin", "csr", "platform_manager", "user_admin"} {
		if _, err := db.Exec("INSERT IGNORE INTO roles (label) VALUES (?)", label); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", label, err)
		}
	}

	for _, label := range []string{"Central", "North", "South", "East", "West"} {
		if _, err := db.Exec("INSERT IGNORE INTO locations (label) VALUES (?)", label); err != nil {
			return fmt.Errorf("failed to seed location %q: %w", label, err)
		}
	}

	for _, label := range []string{"Low", "Medium", "High", "Critical"} {
		if _, err := db.Exec("INSERT IGNORE INTO urgency_levels (label) VALUES (?)", label); err != nil {
			return fmt.Errorf("failed to seed urgency level %q: %w", label, err)
		}
	}

	log.Info("lookup tables seeded")
	return nil
}
