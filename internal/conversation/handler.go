package conversation

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/eleven-am/voice-console/internal/dto"
	"github.com/eleven-am/voice-console/internal/shared"
	"github.com/labstack/echo/v4"
)

const (
	maxReportSize    = 8 << 20
	defaultListLimit = 20
	maxListLimit     = 100
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("handler", "conversation"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/store-conversation", h.StoreConversation)
	g.POST("/get-context", h.GetContext)
	g.GET("/call-details", h.GetCallDetails)
	g.GET("/conversations", h.ListConversations)
	g.GET("/conversations/:id", h.GetConversation)
}

// StoreConversation godoc
// @Summary      Store an end-of-call report
// @Description  Webhook for the voice provider's end-of-call report. Persists the conversation and indexes its summary.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request  body      conversation.Report  true  "End-of-call report"
// @Success      200      {object}  dto.StoreConversationResponse
// @Failure      400      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /store-conversation [post]
func (h *Handler) StoreConversation(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxReportSize))
	if err != nil {
		return shared.BadRequest("invalid_request", "failed to read request body")
	}

	report, err := DecodeReport(body)
	if err != nil {
		return shared.BadRequest("invalid_payload", "expected a JSON object payload")
	}

	conv, err := h.service.StoreReport(c.Request().Context(), report)
	switch {
	case errors.Is(err, ErrInvalidReport):
		return shared.BadRequest("invalid_payload", "invalid payload structure or type is not 'end-of-call-report'")
	case errors.Is(err, ErrMissingTranscript):
		return shared.NewAPIError("missing_transcript", "missing transcript in payload").
			WithDetails(dto.ValidationError{Field: "message.transcript", Message: "transcript is required"}).
			ToHTTP(http.StatusBadRequest)
	case errors.Is(err, ErrInvalidTimestamp):
		return shared.BadRequest("invalid_timestamp", err.Error())
	case err != nil:
		h.logger.Error("failed to store conversation", "error", err)
		return shared.InternalError("store_failed", "failed to store conversation")
	}

	return c.JSON(http.StatusOK, dto.StoreConversationResponse{
		Status: "stored",
		DBID:   conv.ID,
	})
}

// GetContext godoc
// @Summary      Retrieve similar call summaries
// @Description  Embeds the query and returns the three most similar stored summaries
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request  body      dto.GetContextRequest  true  "Search query"
// @Success      200      {object}  dto.GetContextResponse
// @Failure      400      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /get-context [post]
func (h *Handler) GetContext(c echo.Context) error {
	var req dto.GetContextRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if req.Query == "" {
		return shared.NewAPIError("missing_query", "missing 'query' in request").
			WithDetails(dto.ValidationError{Field: "query", Message: "query is required"}).
			ToHTTP(http.StatusBadRequest)
	}

	docs, err := h.service.Context(c.Request().Context(), req.Query)
	if err != nil {
		h.logger.Error("failed to get context", "error", err)
		return shared.InternalError("context_failed", "failed to retrieve context")
	}

	return c.JSON(http.StatusOK, dto.GetContextResponse{Context: docs})
}

// GetCallDetails godoc
// @Summary      Get post-call analysis
// @Description  Returns the analysis and summary for a call, or an empty object while the report has not arrived
// @Tags         conversations
// @Produce      json
// @Param        call_id  query     string  true  "Provider call ID"
// @Success      200      {object}  dto.CallDetailsResponse
// @Failure      400      {object}  shared.APIError
// @Failure      500      {object}  shared.APIError
// @Router       /call-details [get]
func (h *Handler) GetCallDetails(c echo.Context) error {
	callID := c.QueryParam("call_id")
	if callID == "" {
		return shared.BadRequest("missing_call_id", "call_id is required")
	}

	conv, err := h.service.CallDetails(c.Request().Context(), callID)
	if errors.Is(err, shared.ErrNotFound) {
		return c.JSON(http.StatusOK, dto.CallDetailsResponse{})
	}
	if err != nil {
		h.logger.Error("failed to get call details", "error", err, "call_id", callID)
		return shared.InternalError("get_failed", "failed to get call details")
	}
	if !conv.Ready() {
		return c.JSON(http.StatusOK, dto.CallDetailsResponse{})
	}

	return c.JSON(http.StatusOK, conversationToDetails(conv))
}

// ListConversations godoc
// @Summary      List recent conversations
// @Tags         conversations
// @Produce      json
// @Param        limit  query     int  false  "Maximum results (default 20, max 100)"
// @Success      200    {object}  dto.ListConversationsResponse
// @Failure      400    {object}  shared.APIError
// @Failure      500    {object}  shared.APIError
// @Router       /conversations [get]
func (h *Handler) ListConversations(c echo.Context) error {
	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return shared.BadRequest("invalid_limit", "limit must be a positive integer")
		}
		limit = min(n, maxListLimit)
	}

	convs, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err)
		return shared.InternalError("list_failed", "failed to list conversations")
	}

	out := make([]dto.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		out = append(out, conversationToSummary(conv))
	}
	return c.JSON(http.StatusOK, dto.ListConversationsResponse{Conversations: out})
}

// GetConversation godoc
// @Summary      Get a stored conversation
// @Tags         conversations
// @Produce      json
// @Param        id   path      int  true  "Conversation ID"
// @Success      200  {object}  dto.ConversationResponse
// @Failure      400  {object}  shared.APIError
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /conversations/{id} [get]
func (h *Handler) GetConversation(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return shared.BadRequest("invalid_id", "id must be a positive integer")
	}

	conv, err := h.service.Get(c.Request().Context(), uint(id))
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NotFound("not_found", "conversation not found")
	}
	if err != nil {
		h.logger.Error("failed to get conversation", "error", err, "id", id)
		return shared.InternalError("get_failed", "failed to get conversation")
	}

	data := dto.StructuredData{}
	for k, v := range conv.StructuredData {
		data[k] = v
	}
	return c.JSON(http.StatusOK, dto.ConversationResponse{
		ConversationSummary: conversationToSummary(conv),
		Transcript:          conv.Transcript,
		RecordingURL:        conv.RecordingURL,
		StructuredData:      data,
		StartedAt:           conv.StartedAt,
		EndedAt:             conv.EndedAt,
	})
}

func conversationToSummary(c *Conversation) dto.ConversationSummary {
	return dto.ConversationSummary{
		ID:        c.ID,
		CallID:    c.CallID,
		Summary:   c.Summary,
		Qualified: c.StructuredData.Bool("is_qualified"),
		CreatedAt: c.CreatedAt,
	}
}

func conversationToDetails(c *Conversation) dto.CallDetailsResponse {
	data := dto.StructuredData{}
	for k, v := range c.StructuredData {
		data[k] = v
	}
	return dto.CallDetailsResponse{
		CallID:       c.CallID,
		Analysis:     &dto.CallAnalysis{StructuredData: data},
		Summary:      c.Summary,
		Transcript:   c.Transcript,
		RecordingURL: c.RecordingURL,
	}
}
