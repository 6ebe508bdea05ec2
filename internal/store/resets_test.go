package store

import (
	"database/sql"
	"testing"

	"carelink/internal/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func resetRows(id, userID int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "username", "candidate_hash", "status"}).
		AddRow(id, userID, "alice", "$2a$10$candidate", status)
}

func TestApproveResetUpdatesAccountPassword(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, username, candidate_hash, status").
			WithArgs(int64(5)).
			WillReturnRows(resetRows(5, 1, models.ResetStatusPending))
		mock.ExpectExec("UPDATE password_reset_requests").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE accounts SET password_hash").
			WithArgs("$2a$10$candidate", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		if err := ApproveReset(tx, 5, 9, "root-admin", "verified by phone"); err != nil {
			t.Fatalf("ApproveReset: %v", err)
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestRejectResetLeavesAccountUntouched(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, user_id, username, candidate_hash, status").
			WithArgs(int64(5)).
			WillReturnRows(resetRows(5, 1, models.ResetStatusPending))
		mock.ExpectExec("UPDATE password_reset_requests").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		if err := RejectReset(tx, 5, 9, "root-admin", "could not verify"); err != nil {
			t.Fatalf("RejectReset: %v", err)
		}
		tx.Commit()

		// No account update may have been issued.
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestReviewedResetIsTerminal(t *testing.T) {
	it(func() {
		testCases := []struct {
			name    string
			status  string
			approve bool
		}{
			{"approve after approve", models.ResetStatusApproved, true},
			{"approve after reject", models.ResetStatusRejected, true},
			{"reject after approve", models.ResetStatusApproved, false},
		}

		for _, testCase := range testCases {
			mock.ExpectBegin()
			mock.ExpectQuery("SELECT id, user_id, username, candidate_hash, status").
				WithArgs(int64(5)).
				WillReturnRows(resetRows(5, 1, testCase.status))
			mock.ExpectRollback()

			tx, _ := db.Begin()
			var err error
			if testCase.approve {
				err = ApproveReset(tx, 5, 9, "root-admin", "")
			} else {
				err = RejectReset(tx, 5, 9, "root-admin", "")
			}
			if err != ErrAlreadyProcessed {
				t.Errorf("%s: expected ErrAlreadyProcessed, got %v", testCase.name, err)
			}
			tx.Rollback()
		}
	})
}

func TestCreateResetRequestUnknownUsername(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT id FROM accounts").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		if _, err := CreateResetRequest(db, "ghost", "$2a$10$candidate"); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
