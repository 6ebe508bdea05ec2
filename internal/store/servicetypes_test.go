package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateServiceTypeStoresSlug(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO service_types").
			WithArgs("Home Repair & Maintenance", "home-repair-and-maintenance").
			WillReturnResult(sqlmock.NewResult(4, 1))

		id, err := CreateServiceType(db, "Home Repair & Maintenance")
		if err != nil {
			t.Fatalf("CreateServiceType: %v", err)
		}
		if id != 4 {
			t.Errorf("expected id 4, got %d", id)
		}
	})
}

func TestUpdateServiceTypeRefreshesSlug(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE service_types SET name").
			WithArgs("Medical Escort", "medical-escort", int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := UpdateServiceType(db, 4, "Medical Escort"); err != nil {
			t.Fatalf("UpdateServiceType: %v", err)
		}
	})
}
