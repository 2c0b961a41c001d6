package dto

// HealthResponse is served on GET /.
type HealthResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// StatsResponse feeds the dashboard.
type StatsResponse struct {
	TotalItems     int64            `json:"total_items"`
	ByStatus       map[string]int64 `json:"by_status"`
	ByProduct      map[string]int64 `json:"by_product"`
	Milestones     int64            `json:"milestones"`
	MilestonesDone int64            `json:"milestones_done"`
	Documents      int64            `json:"documents"`
	Observations   int64            `json:"observations"`
}
