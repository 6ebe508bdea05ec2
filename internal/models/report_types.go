package models

// TrendPoint is one day in the report trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ReportSummary is the aggregation shape consumed by the platform-manager
// dashboard. A zero-result range must still return every field populated:
// empty maps and an empty slice, never nil/absent fields.
type ReportSummary struct {
	TotalRequests    int            `json:"totalRequests"`
	ByStatus         map[string]int `json:"byStatus"`
	ByServiceType    map[string]int `json:"byServiceType"`
	UniqueVolunteers int            `json:"uniqueVolunteers"`
	CompletionRate   float64        `json:"completionRate"`
	TrendDaily       []TrendPoint   `json:"trendDaily"`
}

// EmptyReportSummary returns the fully-populated zero summary.
func EmptyReportSummary() *ReportSummary {
	return &ReportSummary{
		ByStatus:      map[string]int{},
		ByServiceType: map[string]int{},
		TrendDaily:    []TrendPoint{},
	}
}
