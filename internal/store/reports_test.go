package store

import (
	"reflect"
	"testing"
	"time"

	"carelink/internal/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func reportRange() (time.Time, time.Time) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 7)
}

func TestSummarizeEmptyRangeReturnsZeroSummary(t *testing.T) {
	it(func() {
		from, to := reportRange()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pin_requests`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		summary, err := Summarize(db, from, to, 0)
		if err != nil {
			t.Fatalf("Summarize: %v", err)
		}

		if !reflect.DeepEqual(summary, models.EmptyReportSummary()) {
			t.Errorf("expected the zero summary, got %+v", summary)
		}
		if summary.ByStatus == nil || summary.ByServiceType == nil || summary.TrendDaily == nil {
			t.Error("zero summary must have non-nil maps and slice")
		}
	})
}

func TestSummarizeAggregates(t *testing.T) {
	it(func() {
		from, to := reportRange()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pin_requests`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery("SELECT status, COUNT").
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
				AddRow(models.RequestStatusAvailable, 1).
				AddRow(models.RequestStatusPending, 1).
				AddRow(models.RequestStatusCompleted, 1))
		mock.ExpectQuery("SELECT st.name, COUNT").
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).
				AddRow("Medical", 2).
				AddRow("Transport", 1))
		mock.ExpectQuery(`SELECT COUNT\(DISTINCT csr_id\)`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT DATE\(created_at\)`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"date", "count"}).
				AddRow("2025-01-01", 2).
				AddRow("2025-01-03", 1))

		summary, err := Summarize(db, from, to, 0)
		if err != nil {
			t.Fatalf("Summarize: %v", err)
		}

		if summary.TotalRequests != 3 {
			t.Errorf("TotalRequests: expected 3, got %d", summary.TotalRequests)
		}
		if summary.ByStatus[models.RequestStatusCompleted] != 1 {
			t.Errorf("ByStatus[Completed]: expected 1, got %d", summary.ByStatus[models.RequestStatusCompleted])
		}
		if summary.ByServiceType["Medical"] != 2 {
			t.Errorf("ByServiceType[Medical]: expected 2, got %d", summary.ByServiceType["Medical"])
		}
		if summary.UniqueVolunteers != 2 {
			t.Errorf("UniqueVolunteers: expected 2, got %d", summary.UniqueVolunteers)
		}
		// 1 completed of 3, rounded to 3 decimals.
		if summary.CompletionRate != 0.333 {
			t.Errorf("CompletionRate: expected 0.333, got %v", summary.CompletionRate)
		}
		if len(summary.TrendDaily) != 2 || summary.TrendDaily[0].Date != "2025-01-01" {
			t.Errorf("TrendDaily: unexpected series %+v", summary.TrendDaily)
		}
	})
}

func TestSummarizeFiltersByServiceType(t *testing.T) {
	it(func() {
		from, to := reportRange()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pin_requests`).
			WithArgs(from, to, int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		summary, err := Summarize(db, from, to, 4)
		if err != nil {
			t.Fatalf("Summarize: %v", err)
		}
		if summary.TotalRequests != 0 {
			t.Errorf("expected zero total, got %d", summary.TotalRequests)
		}
	})
}
