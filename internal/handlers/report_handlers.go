package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"carelink/internal/models"
	"carelink/internal/store"

	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportRange parses from/to query dates. The stored range is half-open,
// so the "to" day is pushed forward by one day to keep it inclusive for
// the caller.
func reportRange(c *gin.Context) (from, to time.Time, serviceTypeID int64, ok bool) {
	from, err := time.Parse(reportDateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid from date (YYYY-MM-DD) is required"})
		return from, to, 0, false
	}
	to, err = time.Parse(reportDateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid to date (YYYY-MM-DD) is required"})
		return from, to, 0, false
	}
	to = to.AddDate(0, 0, 1)

	if raw := c.Query("serviceTypeId"); raw != "" {
		serviceTypeID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || serviceTypeID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid serviceTypeId"})
			return from, to, 0, false
		}
	}
	return from, to, serviceTypeID, true
}

// QuickReport is the handler for GET /api/pm/reports/quick: the trailing
// seven days, all service types.
func (h *Handlers) QuickReport(c *gin.Context) {
	now := time.Now()
	summary, err := store.Summarize(h.DB, now.AddDate(0, 0, -7), now, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CustomReport is the handler for GET /api/pm/reports/custom.
func (h *Handlers) CustomReport(c *gin.Context) {
	from, to, serviceTypeID, ok := reportRange(c)
	if !ok {
		return
	}

	summary, err := store.Summarize(h.DB, from, to, serviceTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CustomReportCSV is the handler for GET /api/pm/reports/custom.csv. It
// renders the summary as metric rows.
func (h *Handlers) CustomReportCSV(c *gin.Context) {
	from, to, serviceTypeID, ok := reportRange(c)
	if !ok {
		return
	}

	summary, err := store.Summarize(h.DB, from, to, serviceTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="report-summary.csv"`)

	w := csv.NewWriter(c.Writer)
	WriteSummaryCSV(w, summary)
	w.Flush()
}

// WriteSummaryCSV renders a report summary as metric/value rows.
func WriteSummaryCSV(w *csv.Writer, summary *models.ReportSummary) {
	w.Write([]string{"metric", "value"})
	w.Write([]string{"totalRequests", strconv.Itoa(summary.TotalRequests)})
	w.Write([]string{"uniqueVolunteers", strconv.Itoa(summary.UniqueVolunteers)})
	w.Write([]string{"completionRate", strconv.FormatFloat(summary.CompletionRate, 'f', 3, 64)})
	for _, status := range []string{models.RequestStatusAvailable, models.RequestStatusPending, models.RequestStatusCompleted} {
		if count, exists := summary.ByStatus[status]; exists {
			w.Write([]string{"status:" + status, strconv.Itoa(count)})
		}
	}
	for _, point := range summary.TrendDaily {
		w.Write([]string{"day:" + point.Date, strconv.Itoa(point.Count)})
	}
}

// CustomReportDataCSV is the handler for GET /api/pm/reports/custom-data.csv.
// One row per request in the range.
func (h *Handlers) CustomReportDataCSV(c *gin.Context) {
	from, to, serviceTypeID, ok := reportRange(c)
	if !ok {
		return
	}

	requests, err := store.ListRequestsInRange(h.DB, from, to, serviceTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list requests"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="report-data.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"reference", "pin", "csr", "title", "serviceType", "location", "urgency", "status", "createdAt"})
	for _, req := range requests {
		csr := "NULL"
		if req.CsrUsername.Valid {
			csr = req.CsrUsername.String
		}
		w.Write([]string{
			req.Reference,
			req.PinUsername,
			csr,
			req.Title,
			req.ServiceType,
			req.LocationName,
			req.UrgencyLabel,
			req.Status,
			req.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
}
