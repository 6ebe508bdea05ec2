package store

import (
	"fmt"
	"math"
	"time"

	"carelink/internal/models"
)

// Summarize aggregates requests created in [from, to), optionally filtered
// to one service type (serviceTypeID > 0). A range with zero matching rows
// returns the fully-populated zero summary, never partial fields.
func Summarize(db DBTX, from, to time.Time, serviceTypeID int64) (*models.ReportSummary, error) {
	where := ` WHERE created_at >= ? AND created_at < ?`
	joinedWhere := ` WHERE pr.created_at >= ? AND pr.created_at < ?`
	args := []interface{}{from, to}
	if serviceTypeID > 0 {
		where += ` AND service_type_id = ?`
		joinedWhere += ` AND pr.service_type_id = ?`
		args = append(args, serviceTypeID)
	}

	summary := models.EmptyReportSummary()

	err := db.QueryRow(`SELECT COUNT(*) FROM pin_requests`+where, args...).
		Scan(&summary.TotalRequests)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}
	if summary.TotalRequests == 0 {
		return summary, nil
	}

	rows, err := db.Query(`SELECT status, COUNT(*) FROM pin_requests`+where+` GROUP BY status`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group by status: %w", err)
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, err
		}
		summary.ByStatus[status] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Query(`SELECT st.name, COUNT(*)
		FROM pin_requests pr JOIN service_types st ON pr.service_type_id = st.id`+
		joinedWhere+` GROUP BY st.name`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group by service type: %w", err)
	}
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			rows.Close()
			return nil, err
		}
		summary.ByServiceType[name] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(DISTINCT csr_id) FROM pin_requests`+where+
		` AND csr_id IS NOT NULL`, args...).Scan(&summary.UniqueVolunteers)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct volunteers: %w", err)
	}

	rows, err = db.Query(`SELECT DATE(created_at), COUNT(*) FROM pin_requests`+where+
		` GROUP BY DATE(created_at) ORDER BY DATE(created_at) ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to build trend series: %w", err)
	}
	for rows.Next() {
		var point models.TrendPoint
		if err := rows.Scan(&point.Date, &point.Count); err != nil {
			rows.Close()
			return nil, err
		}
		summary.TrendDaily = append(summary.TrendDaily, point)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	completed := summary.ByStatus[models.RequestStatusCompleted]
	rate := float64(completed) / float64(summary.TotalRequests)
	summary.CompletionRate = math.Round(rate*1000) / 1000

	return summary, nil
}
