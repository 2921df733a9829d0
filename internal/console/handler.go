package console

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/eleven-am/voice-console/internal/callstate"
	"github.com/eleven-am/voice-console/internal/controller"
	"github.com/eleven-am/voice-console/internal/dto"
	"github.com/eleven-am/voice-console/internal/shared"
	"github.com/eleven-am/voice-console/internal/ui"
	"github.com/eleven-am/voice-console/internal/voice"
	"github.com/labstack/echo/v4"
)

const pageTitle = "Voice Console"

type CallController interface {
	HandleStart(ctx context.Context) error
	HandleStop(ctx context.Context) error
	Snapshot() callstate.Snapshot
	Subscribe() (<-chan callstate.Snapshot, func())
}

type Handler struct {
	ctrl   CallController
	tokens *voice.TokenService
	logger *slog.Logger
}

func NewHandler(ctrl CallController, tokens *voice.TokenService, logger *slog.Logger) *Handler {
	return &Handler{
		ctrl:   ctrl,
		tokens: tokens,
		logger: logger.With("handler", "console"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Page)
	g.GET("/call/view", h.View)
	g.GET("/call/state", h.State)
	g.POST("/call/start", h.Start)
	g.POST("/call/stop", h.Stop)
	g.GET("/call/events", h.Events)
	g.GET("/call/token", h.Token)
}

func (h *Handler) app() ui.App {
	return ui.App{Snapshot: h.ctrl.Snapshot(), Actions: ui.DefaultActions}
}

func (h *Handler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, "page", ui.Page{
		Title:     pageTitle,
		App:       h.app(),
		EventsURL: "/call/events",
		ViewURL:   "/call/view",
		TokenURL:  "/call/token",
	})
}

func (h *Handler) View(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Render(http.StatusOK, "app", h.app())
}

// State godoc
// @Summary      Get call state
// @Description  Returns the console's current call snapshot
// @Tags         console
// @Produce      json
// @Success      200  {object}  callstate.Snapshot
// @Router       /call/state [get]
func (h *Handler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ctrl.Snapshot())
}

// Start godoc
// @Summary      Start a call
// @Description  Starts a call with the configured assistant. A failed start is logged and leaves the console on the start view.
// @Tags         console
// @Produce      json
// @Success      200  {object}  callstate.Snapshot
// @Success      303  "Redirect to the console page for form posts"
// @Failure      409  {object}  shared.APIError
// @Router       /call/start [post]
func (h *Handler) Start(c echo.Context) error {
	err := h.ctrl.HandleStart(c.Request().Context())
	switch {
	case errors.Is(err, controller.ErrCallInProgress):
		return shared.Conflict("call_in_progress", "a call is already in progress")
	case errors.Is(err, controller.ErrClosed):
		return shared.ServiceUnavailable("shutting_down", "console is shutting down")
	case err != nil:
		h.logger.Warn("start request failed", "error", err)
	}
	return h.respond(c)
}

// Stop godoc
// @Summary      Stop the call
// @Description  Ends the current call and resets the console, or waits for the call's analysis when result fetching is enabled
// @Tags         console
// @Produce      json
// @Success      200  {object}  callstate.Snapshot
// @Success      303  "Redirect to the console page for form posts"
// @Router       /call/stop [post]
func (h *Handler) Stop(c echo.Context) error {
	if err := h.ctrl.HandleStop(c.Request().Context()); err != nil {
		if errors.Is(err, controller.ErrClosed) {
			return shared.ServiceUnavailable("shutting_down", "console is shutting down")
		}
		h.logger.Warn("stop request failed", "error", err)
	}
	return h.respond(c)
}

func (h *Handler) respond(c echo.Context) error {
	if wantsJSON(c.Request()) {
		return c.JSON(http.StatusOK, h.ctrl.Snapshot())
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Events godoc
// @Summary      Stream call state
// @Description  Server-sent events carrying a snapshot after every state change
// @Tags         console
// @Produce      text/event-stream
// @Success      200
// @Router       /call/events [get]
func (h *Handler) Events(c echo.Context) error {
	stream, err := NewSnapshotStream(c.Response())
	if err != nil {
		return shared.InternalError("streaming_unsupported", "streaming not supported")
	}

	snapshots, release := h.ctrl.Subscribe()
	defer release()

	err = stream.Run(c.Request().Context(), snapshots)
	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Debug("event stream ended", "error", err)
	}
	return nil
}

// Token godoc
// @Summary      Create a LiveKit token for the current call
// @Description  Issues a join token for the room carrying the active call's audio
// @Tags         console
// @Produce      json
// @Success      200  {object}  dto.TokenResponse
// @Failure      404  {object}  shared.APIError  "No active call"
// @Failure      503  {object}  shared.APIError  "LiveKit not configured"
// @Failure      500  {object}  shared.APIError
// @Router       /call/token [get]
func (h *Handler) Token(c echo.Context) error {
	if h.tokens == nil || !h.tokens.Enabled() {
		return shared.ServiceUnavailable("tokens_disabled", "livekit is not configured")
	}

	snap := h.ctrl.Snapshot()
	if snap.CallID == "" || (snap.Phase != callstate.PhaseStarting && snap.Phase != callstate.PhaseActive) {
		return shared.NotFound("no_active_call", "no active call")
	}

	room := voice.RoomForCall(snap.CallID)
	identity := voice.NewListenerIdentity()
	token, err := h.tokens.GenerateToken(identity, room)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err, "call_id", snap.CallID)
		return shared.InternalError("token_failed", "failed to generate LiveKit token")
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		Token:    token,
		URL:      h.tokens.URL(),
		Room:     room,
		Identity: identity,
	})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
