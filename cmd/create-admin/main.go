package main

import (
	"flag"
	"fmt"

	"carelink/internal/config"
	"carelink/internal/database"
	"carelink/internal/models"
	"carelink/internal/store"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

// Bootstraps the first user-admin account so the admin surface is
// reachable on a fresh deployment.
func main() {
	username := flag.String("username", "admin", "username for the user-admin account")
	password := flag.String("password", "", "password for the user-admin account (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on system environment variables")
	}
	cfg := config.Load()

	db, err := database.OpenDB(cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.WithError(err).Fatal("failed to initialize schema")
	}
	if err := database.SeedLookups(db); err != nil {
		log.WithError(err).Fatal("failed to seed lookup tables")
	}

	role, err := store.GetRoleByLabel(db, models.RoleUserAdmin)
	if err != nil {
		log.WithError(err).Fatal("failed to look up user_admin role")
	}

	var pw models.Password
	if err := pw.Set(*password); err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}

	id, err := store.CreateAccount(db, *username, pw.Hash, role.ID)
	if err != nil {
		if store.IsDuplicate(err) {
			log.Fatalf("account %q already exists", *username)
		}
		log.WithError(err).Fatal("failed to create account")
	}

	fmt.Printf("user-admin account created: id=%d username=%s\n", id, *username)
}
