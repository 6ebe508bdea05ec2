package store

import (
	"database/sql"
	"testing"

	"carelink/internal/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"
)

var (
	db   *sql.DB
	mock sqlmock.Sqlmock
)

func setUp() {
	db, mock, _ = sqlmock.New()
}

func tearDown() {
	db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func lockRows(pinID int64, csrID interface{}, title, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"pin_id", "csr_id", "title", "status"}).
		AddRow(pinID, csrID, title, status)
}

func expectLock(requestID int64, rows *sqlmock.Rows) {
	mock.ExpectQuery("SELECT pin_id, csr_id, title, status FROM pin_requests").
		WithArgs(requestID).
		WillReturnRows(rows)
}

func TestDeclareInterestCreatesInterestAndOffer(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectQuery("SELECT id FROM csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO csr_offers").
			WithArgs(int64(2), int64(10), models.OfferStatusPending).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		already, err := DeclareInterest(tx, 2, 10, "bob")
		if err != nil {
			t.Fatalf("DeclareInterest: %v", err)
		}
		if already {
			t.Error("first declaration reported already-interested")
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestDeclareInterestIsIdempotent(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectQuery("SELECT id FROM csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		already, err := DeclareInterest(tx, 2, 10, "bob")
		if err != nil {
			t.Fatalf("DeclareInterest: %v", err)
		}
		if !already {
			t.Error("repeat declaration did not report already-interested")
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestDeclareInterestRejectsAssignedRequest(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, int64(5), "Grocery run", models.RequestStatusPending))
		mock.ExpectRollback()

		tx, _ := db.Begin()
		_, err := DeclareInterest(tx, 2, 10, "bob")
		if err != ErrAlreadyAssigned {
			t.Errorf("expected ErrAlreadyAssigned, got %v", err)
		}
		tx.Rollback()
	})
}

func TestAcceptOfferAssignsWinnerAndRejectsLosers(t *testing.T) {
	it(func() {
		// bob (2) wins, carol (3) loses.
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectQuery("SELECT id FROM csr_offers").
			WithArgs(int64(2), int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
		mock.ExpectQuery("SELECT csr_id FROM csr_offers").
			WithArgs(int64(10), int64(2), models.OfferStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"csr_id"}).AddRow(3))
		mock.ExpectExec("UPDATE pin_requests SET csr_id").
			WithArgs(int64(2), models.RequestStatusPending, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE csr_offers SET status").
			WithArgs(models.OfferStatusAccepted, int64(20)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE csr_offers SET status").
			WithArgs(models.OfferStatusRejected, int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM csr_interests").
			WithArgs(int64(10), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WithArgs(int64(2), models.NotificationAccepted, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WithArgs(int64(3), models.NotificationRejected, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		if err := AcceptOffer(tx, 10, 2); err != nil {
			t.Fatalf("AcceptOffer: %v", err)
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestAcceptOfferRefusesSecondAssignment(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, int64(2), "Grocery run", models.RequestStatusPending))
		mock.ExpectRollback()

		tx, _ := db.Begin()
		if err := AcceptOffer(tx, 10, 3); err != ErrAlreadyAssigned {
			t.Errorf("expected ErrAlreadyAssigned, got %v", err)
		}
		tx.Rollback()
	})
}

func TestAcceptOfferRequiresExistingOffer(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectQuery("SELECT id FROM csr_offers").
			WithArgs(int64(9), int64(10)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		tx, _ := db.Begin()
		if err := AcceptOffer(tx, 10, 9); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		tx.Rollback()
	})
}

func TestMarkCompletedRequiresAssignment(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectRollback()

		tx, _ := db.Begin()
		if err := MarkCompleted(tx, 10, 1); err != ErrNotAssigned {
			t.Errorf("expected ErrNotAssigned, got %v", err)
		}
		tx.Rollback()
	})
}

func TestMarkCompletedFinishesRequestAndOffer(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, int64(2), "Grocery run", models.RequestStatusPending))
		mock.ExpectExec("UPDATE pin_requests SET status").
			WithArgs(models.RequestStatusCompleted, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE csr_offers SET status").
			WithArgs(models.OfferStatusCompleted, int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		if err := MarkCompleted(tx, 10, 1); err != nil {
			t.Fatalf("MarkCompleted: %v", err)
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestCancelEngagementRevertsAssignedRequest(t *testing.T) {
	it(func() {
		// The assigned CSR cancels; the request goes back to Available.
		mock.ExpectBegin()
		expectLock(10, lockRows(1, int64(2), "Grocery run", models.RequestStatusPending))
		mock.ExpectExec("UPDATE csr_offers SET status").
			WithArgs(models.OfferStatusRejected, int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE pin_requests SET csr_id = NULL").
			WithArgs(models.RequestStatusAvailable, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		if err := CancelEngagement(tx, 2, 10, "bob"); err != nil {
			t.Fatalf("CancelEngagement: %v", err)
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestWithdrawInterestClosesOffer(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectExec("DELETE FROM csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE csr_offers SET status").
			WithArgs(models.OfferStatusRejected, int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		if err := WithdrawInterest(tx, 2, 10, "bob"); err != nil {
			t.Fatalf("WithdrawInterest: %v", err)
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestDeclareInterestReopensRejectedOffer(t *testing.T) {
	it(func() {
		// bob withdrew earlier, so no interest row remains but a Rejected
		// offer does; re-declaring must flip it back to Pending.
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectQuery("SELECT id FROM csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectExec("INSERT INTO csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectExec("INSERT INTO csr_offers .+ ON DUPLICATE KEY UPDATE").
			WithArgs(int64(2), int64(10), models.OfferStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		already, err := DeclareInterest(tx, 2, 10, "bob")
		if err != nil {
			t.Fatalf("DeclareInterest: %v", err)
		}
		if already {
			t.Error("re-declaration after withdrawal reported already-interested")
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestWithdrawInterestByAssignedCsrRevertsRequest(t *testing.T) {
	it(func() {
		// The assigned CSR withdraws; the request must not stay Pending
		// with csr_id set while its only offer reads Rejected.
		mock.ExpectBegin()
		expectLock(10, lockRows(1, int64(2), "Grocery run", models.RequestStatusPending))
		mock.ExpectExec("DELETE FROM csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE csr_offers SET status").
			WithArgs(models.OfferStatusRejected, int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE pin_requests SET csr_id = NULL").
			WithArgs(models.RequestStatusAvailable, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO notifications").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, _ := db.Begin()
		if err := WithdrawInterest(tx, 2, 10, "bob"); err != nil {
			t.Fatalf("WithdrawInterest: %v", err)
		}
		tx.Commit()

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestWithdrawInterestWithoutInterestIsNotFound(t *testing.T) {
	it(func() {
		mock.ExpectBegin()
		expectLock(10, lockRows(1, nil, "Grocery run", models.RequestStatusAvailable))
		mock.ExpectExec("DELETE FROM csr_interests").
			WithArgs(int64(2), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, _ := db.Begin()
		if err := WithdrawInterest(tx, 2, 10, "bob"); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		tx.Rollback()
	})
}
