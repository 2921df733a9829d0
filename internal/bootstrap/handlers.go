package bootstrap

import (
	"log/slog"
	"os"

	"github.com/eleven-am/voice-console/internal/callmetrics"
	"github.com/eleven-am/voice-console/internal/console"
	"github.com/eleven-am/voice-console/internal/controller"
	"github.com/eleven-am/voice-console/internal/conversation"
	"github.com/eleven-am/voice-console/internal/ui"
	"github.com/eleven-am/voice-console/internal/voice"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

type HandlerParams struct {
	fx.In

	ConsoleHandler      *console.Handler
	ConversationHandler *conversation.Handler
	MetricsHandler      *callmetrics.Handler
	Renderer            *ui.Renderer
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	e.Renderer = params.Renderer

	root := e.Group("")
	params.ConsoleHandler.RegisterRoutes(root)
	params.ConversationHandler.RegisterRoutes(root)
	params.MetricsHandler.RegisterRoutes(e.Group("/metrics"))

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideRenderer() (*ui.Renderer, error) {
	return ui.NewRenderer()
}

func ProvideConsoleHandler(ctrl *controller.Controller, tokens *voice.TokenService, logger *slog.Logger) *console.Handler {
	return console.NewHandler(ctrl, tokens, logger)
}

func ProvideConversationHandler(service *conversation.Service, logger *slog.Logger) *conversation.Handler {
	return conversation.NewHandler(service, logger)
}

func ProvideMetricsHandler(store *callmetrics.Store, logger *slog.Logger) *callmetrics.Handler {
	return callmetrics.NewHandler(store, logger)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideRenderer,
		ProvideConsoleHandler,
		ProvideConversationHandler,
		ProvideMetricsHandler,
	),
	fx.Invoke(RegisterRoutes),
)
