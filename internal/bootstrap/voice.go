package bootstrap

import (
	"context"
	"log/slog"

	"github.com/eleven-am/voice-console/internal/calldetails"
	"github.com/eleven-am/voice-console/internal/callmetrics"
	"github.com/eleven-am/voice-console/internal/controller"
	"github.com/eleven-am/voice-console/internal/shared"
	"github.com/eleven-am/voice-console/internal/voice"
	"go.uber.org/fx"
)

// ProvideVoiceClient connects to the hosted voice API. Without VOICE_API_URL
// the console runs against an in-memory client whose calls go live as soon
// as they start.
func ProvideVoiceClient(lc fx.Lifecycle, cfg *Config, logger *slog.Logger) voice.Client {
	if cfg.VoiceAPIURL == "" {
		logger.Warn("VOICE_API_URL not set, using in-memory voice client")
		return newLocalVoiceClient()
	}

	client := voice.NewRealtimeClient(voice.Config{
		APIURL:      cfg.VoiceAPIURL,
		WSURL:       cfg.VoiceWSURL,
		APIKey:      cfg.VoiceAPIKey,
		AssistantID: cfg.VoiceAssistantID,
	}, logger)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

// newLocalVoiceClient reports call-start on every start and call-end on every
// stop. Each start returns the ID drawn by the previous one, so no two calls
// share an ID.
func newLocalVoiceClient() *voice.FakeClient {
	fake := voice.NewFakeClient(shared.NewID("call_"))
	fake.OnStarted(func() {
		fake.SetStartResult(&voice.Call{ID: shared.NewID("call_")}, nil)
		fake.Emit(voice.Event{Type: voice.EventCallStart})
	})
	fake.OnStopped(func() {
		fake.Emit(voice.Event{Type: voice.EventCallEnd})
	})
	return fake
}

func ProvideTokenService(cfg *Config) *voice.TokenService {
	return voice.NewTokenService(cfg.LiveKitAPIKey, cfg.LiveKitAPISecret, cfg.LiveKitURL)
}

func ProvideCallDetailsPoller(cfg *Config, metrics *callmetrics.Store, logger *slog.Logger) *calldetails.Poller {
	poller := calldetails.NewPoller(calldetails.NewClient(cfg.CallDetailsURL, 0), cfg.PollInterval, logger)
	poller.OnAttempt = func(callID string, attempt int) {
		if err := metrics.Record(context.Background(), callmetrics.MetricPollAttempts); err != nil {
			logger.Debug("failed to record poll attempt", "call_id", callID, "attempt", attempt, "error", err)
		}
	}
	return poller
}

func ProvideController(
	lc fx.Lifecycle,
	client voice.Client,
	poller *calldetails.Poller,
	metrics *callmetrics.Store,
	cfg *Config,
	logger *slog.Logger,
) *controller.Controller {
	ctrl := controller.New(client, poller, metrics, controller.Config{
		PollInterval:      cfg.PollInterval,
		FetchResultOnStop: cfg.FetchResultOnStop,
	}, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ctrl.Open()
		},
		OnStop: func(ctx context.Context) error {
			return ctrl.Close()
		},
	})
	return ctrl
}

var VoiceModule = fx.Options(
	fx.Provide(
		ProvideVoiceClient,
		ProvideTokenService,
		ProvideCallDetailsPoller,
		ProvideController,
	),
)
