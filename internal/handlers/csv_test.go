package handlers

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"testing"
	"time"

	"carelink/internal/models"
)

func TestRequestHistoryCSVRendersNullAndSequentialIDs(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	requests := []*models.PinRequest{
		{
			ID:           41,
			Title:        "Grocery run",
			ServiceType:  "Transport",
			LocationName: "North",
			UrgencyLabel: "Low",
			Status:       models.RequestStatusAvailable,
			CsrUsername:  sql.NullString{},
			CreatedAt:    created,
		},
		{
			ID:           57,
			Title:        `He said "urgent", twice`,
			ServiceType:  "Medical",
			LocationName: "Central",
			UrgencyLabel: "High",
			Status:       models.RequestStatusCompleted,
			CsrUsername:  sql.NullString{String: "bob", Valid: true},
			CreatedAt:    created,
		},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	WriteRequestHistoryCSV(w, requests)
	w.Flush()

	expected := "id,title,serviceType,location,urgency,status,csr,createdAt\n" +
		"1,Grocery run,Transport,North,Low,Available,NULL,2025-03-01 09:30:00\n" +
		"2,\"He said \"\"urgent\"\", twice\",Medical,Central,High,Completed,bob,2025-03-01 09:30:00\n"

	if buf.String() != expected {
		t.Errorf("CSV mismatch:\nexpected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestSummaryCSVIncludesDerivedMetrics(t *testing.T) {
	summary := &models.ReportSummary{
		TotalRequests:    4,
		ByStatus:         map[string]int{models.RequestStatusCompleted: 2},
		ByServiceType:    map[string]int{"Medical": 4},
		UniqueVolunteers: 2,
		CompletionRate:   0.5,
		TrendDaily:       []models.TrendPoint{{Date: "2025-03-01", Count: 4}},
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	WriteSummaryCSV(w, summary)
	w.Flush()

	expected := "metric,value\n" +
		"totalRequests,4\n" +
		"uniqueVolunteers,2\n" +
		"completionRate,0.500\n" +
		"status:Completed,2\n" +
		"day:2025-03-01,4\n"

	if buf.String() != expected {
		t.Errorf("CSV mismatch:\nexpected:\n%s\ngot:\n%s", expected, buf.String())
	}
}
