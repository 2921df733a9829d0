package console

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/eleven-am/voice-console/internal/callstate"
)

const sseKeepAliveInterval = 30 * time.Second

// SnapshotStream writes controller snapshots to one browser as server-sent
// events named "snapshot", with a comment line as keepalive.
type SnapshotStream struct {
	writer    http.ResponseWriter
	flusher   http.Flusher
	keepAlive time.Duration
	done      chan struct{}
	closeOnce sync.Once
}

func NewSnapshotStream(w http.ResponseWriter) (*SnapshotStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, http.ErrNotSupported
	}

	return &SnapshotStream{
		writer:    w,
		flusher:   flusher,
		keepAlive: sseKeepAliveInterval,
		done:      make(chan struct{}),
	}, nil
}

func (s *SnapshotStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return nil
}

// Run forwards snapshots until the channel closes, ctx ends, or Close is
// called.
func (s *SnapshotStream) Run(ctx context.Context, snapshots <-chan callstate.Snapshot) error {
	h := s.writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	s.writer.WriteHeader(http.StatusOK)
	s.flusher.Flush()

	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()
	defer func() { _ = s.Close() }()

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			if err := s.writeSnapshot(snap); err != nil {
				return err
			}
		case <-ticker.C:
			if err := s.writeKeepAlive(); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		}
	}
}

func (s *SnapshotStream) writeSnapshot(snap callstate.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.writer, "id: %d\nevent: snapshot\ndata: %s\n\n", snap.Version, data); err != nil {
		return err
	}

	s.flusher.Flush()
	return nil
}

func (s *SnapshotStream) writeKeepAlive() error {
	_, err := s.writer.Write([]byte(":keepalive\n\n"))
	if err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
