package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/voice-console/internal/callmetrics"
	"github.com/eleven-am/voice-console/internal/callstate"
	"github.com/eleven-am/voice-console/internal/voice"
)

var (
	ErrCallInProgress = errors.New("call already in progress")
	ErrNoCall         = errors.New("no call to fetch details for")
	ErrClosed         = errors.New("controller closed")
)

type ResultPoller interface {
	PollEvery(ctx context.Context, callID string, interval time.Duration) (*callstate.CallResult, error)
}

type Recorder interface {
	Record(ctx context.Context, metric callmetrics.Metric) error
}

type Config struct {
	PollInterval      time.Duration
	FetchResultOnStop bool
}

type Stats struct {
	Phase       callstate.Phase `json:"phase"`
	Subscribers int             `json:"subscribers"`
	Polling     bool            `json:"polling"`
	Listening   bool            `json:"listening"`
}

// Controller owns the console's call state. Every mutation happens under mu
// and is published to subscribers as an immutable Snapshot.
type Controller struct {
	voice    voice.Client
	poller   ResultPoller
	recorder Recorder
	cfg      Config
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	state       callstate.State
	version     uint64
	starting    bool
	pollGen     uint64
	cancelPoll  context.CancelFunc
	sub         voice.Subscription
	subscribers map[uint64]chan callstate.Snapshot
	nextSubID   uint64
	closed      bool
}

func New(client voice.Client, poller ResultPoller, recorder Recorder, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		voice:       client,
		poller:      poller,
		recorder:    recorder,
		cfg:         cfg,
		logger:      logger.With("component", "call_controller"),
		ctx:         ctx,
		cancel:      cancel,
		state:       callstate.Initial(),
		subscribers: make(map[uint64]chan callstate.Snapshot),
	}
}

// Open registers the controller for the voice client's five events. The
// registration lives until Close.
func (c *Controller) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.sub != nil {
		return nil
	}

	subs := make([]voice.Subscription, 0, len(voice.Events))
	for _, ev := range voice.Events {
		subs = append(subs, c.voice.On(ev, c.handleEvent))
	}
	c.sub = voice.Combine(subs...)
	c.logger.Info("listening for call events")
	return nil
}

func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.cancelPollLocked()
	if c.sub != nil {
		c.sub.Unsubscribe()
		c.sub = nil
	}
	for id, ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, id)
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	return nil
}

// HandleStart begins a call. It is only accepted from the start screen;
// failures are logged and put the console back on that screen.
func (c *Controller) HandleStart(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.starting {
		c.mu.Unlock()
		return ErrCallInProgress
	}
	next, err := c.state.Begin()
	if err != nil {
		c.mu.Unlock()
		return ErrCallInProgress
	}
	c.cancelPollLocked()
	c.starting = true
	c.setLocked(next)
	c.mu.Unlock()

	c.record(callmetrics.MetricStarts)

	call, err := c.voice.StartAssistant(ctx)
	if err == nil && (call == nil || call.ID == "") {
		err = voice.ErrMissingCallID
	}

	c.mu.Lock()
	c.starting = false
	if err != nil {
		c.setLocked(c.state.StartFailed())
		c.mu.Unlock()

		c.logger.Error("failed to start call", "error", err)
		c.record(callmetrics.MetricStartFailures)
		return fmt.Errorf("start call: %w", err)
	}

	next = c.state.Started(call.ID)
	abandoned := next.CallID != call.ID
	c.setLocked(next)
	c.mu.Unlock()

	if abandoned {
		c.logger.Warn("call was stopped before start completed", "call_id", call.ID)
		c.stopVoice(ctx)
		return nil
	}

	c.logger.Info("call starting", "call_id", call.ID)
	return nil
}

// HandleStop ends the call. By default the console resets completely; with
// FetchResultOnStop it waits for the call's analysis instead.
func (c *Controller) HandleStop(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.cancelPollLocked()
	prev := c.state
	live := prev.Phase == callstate.PhaseStarting || prev.Phase == callstate.PhaseActive
	fetch := c.cfg.FetchResultOnStop && live && prev.CallID != ""
	if fetch {
		// The call ID is captured before the provider is told to stop, so a
		// call-end emitted by the stop cannot clear it.
		c.setLocked(prev.AwaitResult())
		c.startPollLocked(prev.CallID, c.cfg.PollInterval)
	} else {
		c.setLocked(prev.Reset())
	}
	c.mu.Unlock()

	if live || prev.Phase == callstate.PhaseIdle {
		c.stopVoice(ctx)
	}
	return nil
}

// GetCallDetails starts polling for the current call's analysis in the
// background, replacing any poll already running. A non-positive interval
// uses the configured one.
func (c *Controller) GetCallDetails(interval time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	callID := c.state.CallID
	if callID == "" {
		return ErrNoCall
	}

	if c.state.Phase != callstate.PhaseFetchingResult {
		c.setLocked(c.state.AwaitResult())
	}
	c.startPollLocked(callID, interval)
	return nil
}

func (c *Controller) startPollLocked(callID string, interval time.Duration) {
	if interval <= 0 {
		interval = c.cfg.PollInterval
	}

	c.cancelPollLocked()
	c.pollGen++
	gen := c.pollGen
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelPoll = cancel
	c.wg.Add(1)

	c.logger.Info("fetching call details", "call_id", callID, "interval", interval)
	go c.poll(ctx, cancel, gen, callID, interval)
}

func (c *Controller) poll(ctx context.Context, cancel context.CancelFunc, gen uint64, callID string, interval time.Duration) {
	defer c.wg.Done()
	defer cancel()

	result, err := c.poller.PollEvery(ctx, callID, interval)

	c.mu.Lock()
	if gen != c.pollGen || ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.cancelPoll = nil

	metric := callmetrics.MetricResultsReady
	if err != nil {
		metric = callmetrics.MetricPollFailures
		c.setLocked(c.state.ResultFailed(err))
	} else {
		c.setLocked(c.state.ResultReady(*result))
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Error("failed to fetch call details", "call_id", callID, "error", err)
	} else {
		c.logger.Info("call details ready", "call_id", callID, "is_qualified", result.Analysis.StructuredData.IsQualified)
	}
	c.record(metric)
}

func (c *Controller) handleEvent(ev voice.Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	prev := c.state
	c.setLocked(prev.Apply(ev))
	c.mu.Unlock()

	switch ev.Type {
	case voice.EventCallStart:
		c.logger.Info("call started", "call_id", ev.CallID)
	case voice.EventCallEnd:
		c.logger.Info("call ended", "call_id", ev.CallID)
		if prev.Phase == callstate.PhaseStarting || prev.Phase == callstate.PhaseActive {
			c.record(callmetrics.MetricCallsEnded)
		}
	}
}

func (c *Controller) Snapshot() callstate.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot(c.version)
}

// Subscribe returns a channel that receives the current snapshot and every
// later one. A subscriber that falls behind only sees the newest snapshot.
// The channel is closed by release or by Close.
func (c *Controller) Subscribe() (<-chan callstate.Snapshot, func()) {
	ch := make(chan callstate.Snapshot, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	ch <- c.state.Snapshot(c.version)
	c.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
	return ch, release
}

func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Phase:       c.state.Phase,
		Subscribers: len(c.subscribers),
		Polling:     c.cancelPoll != nil,
		Listening:   c.sub != nil,
	}
}

func (c *Controller) setLocked(next callstate.State) {
	c.state = next
	c.version++
	snap := next.Snapshot(c.version)

	for _, ch := range c.subscribers {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (c *Controller) cancelPollLocked() {
	if c.cancelPoll != nil {
		c.cancelPoll()
		c.cancelPoll = nil
	}
	c.pollGen++
}

func (c *Controller) stopVoice(ctx context.Context) {
	err := c.voice.StopAssistant(ctx)
	switch {
	case err == nil:
	case errors.Is(err, voice.ErrNoActiveCall):
		c.logger.Debug("stop requested without an active call")
	default:
		c.logger.Error("failed to stop call", "error", err)
	}
}

func (c *Controller) record(metric callmetrics.Metric) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(c.ctx, metric); err != nil && c.ctx.Err() == nil {
		c.logger.Warn("failed to record call metric", "metric", metric, "error", err)
	}
}
