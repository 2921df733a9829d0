package calldetails

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/eleven-am/voice-console/internal/callstate"
	"github.com/sethvargo/go-retry"
)

const DefaultInterval = 3 * time.Second

// Poller asks a Fetcher for a call's analysis until it is ready. Not-ready
// answers are retried at a constant interval with no attempt limit; any
// other error ends the poll. Cancelling ctx is the only other way out.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger

	// OnAttempt, when set, is called before every fetch with the 1-based
	// attempt number.
	OnAttempt func(callID string, attempt int)
}

func NewPoller(fetcher Fetcher, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		logger:   logger.With("component", "call_details_poller"),
	}
}

// PollEvery polls at the given interval; a non-positive interval falls back
// to the poller's own.
func (p *Poller) PollEvery(ctx context.Context, callID string, interval time.Duration) (*callstate.CallResult, error) {
	if interval <= 0 {
		interval = p.interval
	}
	attempt := 0
	return retry.DoValue(ctx, retry.NewConstant(interval), func(ctx context.Context) (*callstate.CallResult, error) {
		attempt++
		if p.OnAttempt != nil {
			p.OnAttempt(callID, attempt)
		}

		result, err := p.fetcher.Fetch(ctx, callID)
		if errors.Is(err, ErrNotReady) {
			p.logger.Debug("call details not ready", "call_id", callID, "attempt", attempt)
			return nil, retry.RetryableError(err)
		}
		if err != nil {
			p.logger.Error("call details fetch failed", "call_id", callID, "attempt", attempt, "error", err)
			return nil, err
		}
		return result, nil
	})
}
