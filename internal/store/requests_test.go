package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// Edits and deletes only apply while the request has no assigned CSR; the
// guard lives in the WHERE clause, so zero rows affected means not found.
func TestUpdateRequestGuardsAssignedRequests(t *testing.T) {
	it(func() {
		mock.ExpectExec(`UPDATE pin_requests`).
			WithArgs("New title", int64(2), "Updated message", int64(3), int64(1), int64(7), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := UpdateRequest(db, 7, 1, "New title", 2, "Updated message", 3, 1)
		if err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUpdateRequestAppliesWhileUnassigned(t *testing.T) {
	it(func() {
		mock.ExpectExec(`UPDATE pin_requests`).
			WithArgs("New title", int64(2), "Updated message", int64(3), int64(1), int64(7), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := UpdateRequest(db, 7, 1, "New title", 2, "Updated message", 3, 1); err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})
}

func TestDeleteRequestGuardsAssignedRequests(t *testing.T) {
	it(func() {
		mock.ExpectExec(`DELETE FROM pin_requests`).
			WithArgs(int64(7), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := DeleteRequest(db, 7, 1)
		if err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
