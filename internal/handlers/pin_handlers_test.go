package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carelink/internal/auth"
	"carelink/internal/middleware"
	"carelink/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

// completeFixture wires CompletePinRequest behind the real auth stack so
// the test exercises token validation and role gating alongside the
// handler itself.
type completeFixture struct {
	db     *sql.DB
	mock   sqlmock.Sqlmock
	router *gin.Engine
	tokens *auth.Tokens
}

func newCompleteFixture(t *testing.T) *completeFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := auth.NewTokens("test-secret", time.Hour)
	h := &Handlers{DB: db, Tokens: tokens}

	router := gin.New()
	pin := router.Group("/api/pin")
	pin.Use(middleware.AuthMiddleware(tokens), middleware.RequireRole(models.RolePIN))
	pin.POST("/requests/:id/complete", h.CompletePinRequest)

	return &completeFixture{db: db, mock: mock, router: router, tokens: tokens}
}

func (f *completeFixture) do(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/pin/requests/7/complete", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCompletePinRequestFinishesAssignedRequest(t *testing.T) {
	f := newCompleteFixture(t)
	token, err := f.tokens.Generate(1, models.RolePIN)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`SELECT pin_id, csr_id, title, status FROM pin_requests`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"pin_id", "csr_id", "title", "status"}).
			AddRow(1, 2, "Grocery run", models.RequestStatusPending))
	f.mock.ExpectExec(`UPDATE pin_requests SET status`).
		WithArgs(models.RequestStatusCompleted, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectExec(`UPDATE csr_offers SET status`).
		WithArgs(models.OfferStatusCompleted, int64(2), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	w := f.do(t, token)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Request completed") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCompletePinRequestRejectsUnassignedRequest(t *testing.T) {
	f := newCompleteFixture(t)
	token, err := f.tokens.Generate(1, models.RolePIN)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`SELECT pin_id, csr_id, title, status FROM pin_requests`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"pin_id", "csr_id", "title", "status"}).
			AddRow(1, nil, "Grocery run", models.RequestStatusAvailable))
	f.mock.ExpectRollback()

	w := f.do(t, token)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCompletePinRequestHidesForeignRequest(t *testing.T) {
	f := newCompleteFixture(t)
	token, err := f.tokens.Generate(1, models.RolePIN)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(`SELECT pin_id, csr_id, title, status FROM pin_requests`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"pin_id", "csr_id", "title", "status"}).
			AddRow(99, 2, "Grocery run", models.RequestStatusPending))
	f.mock.ExpectRollback()

	w := f.do(t, token)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCompletePinRequestRequiresToken(t *testing.T) {
	f := newCompleteFixture(t)

	w := f.do(t, "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCompletePinRequestRejectsCsrRole(t *testing.T) {
	f := newCompleteFixture(t)
	token, err := f.tokens.Generate(2, models.RoleCSR)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	w := f.do(t, token)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}
