package callmetrics

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eleven-am/voice-console/internal/dto"
	"github.com/eleven-am/voice-console/internal/shared"
	"github.com/labstack/echo/v4"
)

const (
	defaultHours = 24
	maxHours     = 168
)

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "callmetrics"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/calls", h.GetMetrics)
	g.GET("/calls/summary", h.GetSummary)
}

func metricsToResponse(m *Metrics) dto.CallMetricsResponse {
	return dto.CallMetricsResponse{
		Date:          m.Date,
		Hour:          m.Hour,
		Starts:        m.Starts,
		StartFailures: m.StartFailures,
		CallsEnded:    m.CallsEnded,
		ResultsReady:  m.ResultsReady,
		PollAttempts:  m.PollAttempts,
		PollFailures:  m.PollFailures,
	}
}

func parseHours(c echo.Context) int {
	hours := defaultHours
	if v := c.QueryParam("hours"); v != "" {
		if hr, err := strconv.Atoi(v); err == nil && hr > 0 && hr <= maxHours {
			hours = hr
		}
	}
	return hours
}

// GetMetrics godoc
// @Summary      Hourly call metrics
// @Description  Returns per-hour call lifecycle counters for the requested window
// @Tags         metrics
// @Produce      json
// @Param        hours  query     int  false  "Window in hours (1-168)"
// @Success      200    {object}  dto.CallMetricsListResponse
// @Failure      500    {object}  shared.APIError
// @Router       /metrics/calls [get]
func (h *Handler) GetMetrics(c echo.Context) error {
	hours := parseHours(c)

	metrics, err := h.store.GetMetrics(c.Request().Context(), hours)
	if err != nil {
		h.logger.Error("failed to get metrics", "error", err)
		return shared.InternalError("get_metrics_failed", "failed to get metrics")
	}
	response := make([]dto.CallMetricsResponse, len(metrics))
	for i, m := range metrics {
		response[i] = metricsToResponse(m)
	}

	return c.JSON(http.StatusOK, dto.CallMetricsListResponse{Hours: hours, Metrics: response})
}

// GetSummary godoc
// @Summary      Weekly call summary
// @Description  Aggregates the last 7 days of call metrics
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.CallMetricsSummaryResponse
// @Failure      500  {object}  shared.APIError
// @Router       /metrics/calls/summary [get]
func (h *Handler) GetSummary(c echo.Context) error {
	metrics, err := h.store.GetMetrics(c.Request().Context(), maxHours)
	if err != nil {
		h.logger.Error("failed to get metrics summary", "error", err)
		return shared.InternalError("get_metrics_failed", "failed to get metrics")
	}

	summary := dto.CallMetricsSummaryResponse{Period: "7d"}
	var pollAttempts int64
	for _, m := range metrics {
		summary.TotalStarts += m.Starts
		summary.TotalFailures += m.StartFailures
		summary.TotalCallsEnded += m.CallsEnded
		summary.TotalResults += m.ResultsReady
		pollAttempts += m.PollAttempts
	}

	if summary.TotalStarts > 0 {
		summary.StartFailureRate = float64(summary.TotalFailures) / float64(summary.TotalStarts) * 100
	}
	if summary.TotalResults > 0 {
		summary.AvgPollAttempts = float64(pollAttempts) / float64(summary.TotalResults)
	}

	return c.JSON(http.StatusOK, summary)
}
