package dto

type CallMetricsResponse struct {
	Date          string `json:"date" example:"2026-01-15"`
	Hour          int    `json:"hour" example:"14"`
	Starts        int64  `json:"starts" example:"20"`
	StartFailures int64  `json:"start_failures" example:"1"`
	CallsEnded    int64  `json:"calls_ended" example:"19"`
	ResultsReady  int64  `json:"results_ready" example:"7"`
	PollAttempts  int64  `json:"poll_attempts" example:"15"`
	PollFailures  int64  `json:"poll_failures" example:"0"`
}

type CallMetricsListResponse struct {
	Hours   int                   `json:"hours" example:"24"`
	Metrics []CallMetricsResponse `json:"metrics"`
}

type CallMetricsSummaryResponse struct {
	Period           string  `json:"period" example:"7d"`
	TotalStarts      int64   `json:"total_starts" example:"120"`
	TotalFailures    int64   `json:"total_start_failures" example:"3"`
	TotalCallsEnded  int64   `json:"total_calls_ended" example:"110"`
	TotalResults     int64   `json:"total_results_ready" example:"40"`
	StartFailureRate float64 `json:"start_failure_rate" example:"2.5"`
	AvgPollAttempts  float64 `json:"avg_poll_attempts" example:"2.1"`
}
