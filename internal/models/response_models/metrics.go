package response_models

type PlannerMetrics struct {
	TotalGenerations uint64 `json:"total_generations"`
	Success          uint64 `json:"success"`
	Timeout          uint64 `json:"timeout"`
	Invalid          uint64 `json:"invalid"`
	Failed           uint64 `json:"failed"`
	Retries          uint64 `json:"retries"`
}

type RouteMetrics struct {
	Count           uint64 `json:"count"`
	TotalDurationMs int64  `json:"total_duration_ms"`
}

type MetricsResponse struct {
	TotalRequests      uint64                  `json:"total_requests"`
	TotalErrors        uint64                  `json:"total_errors"`
	Routes             map[string]RouteMetrics `json:"routes"`
	AvgTotalDurationMs int64                   `json:"avg_total_duration_ms"`
	Planner            PlannerMetrics          `json:"planner"`
}
