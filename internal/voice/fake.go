package voice

import (
	"context"
	"sync"
)

// FakeClient is an in-memory Client for tests and local development. Events
// are injected with Emit.
type FakeClient struct {
	*Emitter

	mu        sync.Mutex
	call      *Call
	startErr  error
	stopErr   error
	starts    int
	stops     int
	onStarted func()
	onStopped func()
}

func NewFakeClient(callID string) *FakeClient {
	return &FakeClient{
		Emitter: NewEmitter(),
		call:    &Call{ID: callID},
	}
}

func (f *FakeClient) SetStartResult(call *Call, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call = call
	f.startErr = err
}

func (f *FakeClient) SetStopError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopErr = err
}

// OnStarted runs fn inside StartAssistant before it returns, which lets a
// test deliver events that race the start response.
func (f *FakeClient) OnStarted(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onStarted = fn
}

// OnStopped registers a hook run at the end of every StopAssistant, the way
// a hosted provider reports call-end after a stop.
func (f *FakeClient) OnStopped(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onStopped = fn
}

func (f *FakeClient) StartAssistant(ctx context.Context) (*Call, error) {
	f.mu.Lock()
	f.starts++
	call, err, hook := f.call, f.startErr, f.onStarted
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, nil
	}
	c := *call
	return &c, nil
}

func (f *FakeClient) StopAssistant(ctx context.Context) error {
	f.mu.Lock()
	f.stops++
	err, hook := f.stopErr, f.onStopped
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return err
}

func (f *FakeClient) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func (f *FakeClient) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}
