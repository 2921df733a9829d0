package callmetrics

import "strconv"

type Metric string

const (
	MetricStarts        Metric = "starts"
	MetricStartFailures Metric = "start_failures"
	MetricCallsEnded    Metric = "calls_ended"
	MetricResultsReady  Metric = "results_ready"
	MetricPollAttempts  Metric = "poll_attempts"
	MetricPollFailures  Metric = "poll_failures"
)

type Metrics struct {
	Date          string `json:"date"`
	Hour          int    `json:"hour"`
	Starts        int64  `json:"starts"`
	StartFailures int64  `json:"start_failures"`
	CallsEnded    int64  `json:"calls_ended"`
	ResultsReady  int64  `json:"results_ready"`
	PollAttempts  int64  `json:"poll_attempts"`
	PollFailures  int64  `json:"poll_failures"`
}

func RedisKey(date string, hour int) string {
	return "calls:metrics:" + date + ":" + strconv.Itoa(hour)
}
