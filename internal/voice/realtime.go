package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/oauth2"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	writeWait          = 10 * time.Second
	maxFrameSize       = 64 * 1024
)

type Config struct {
	APIURL      string
	WSURL       string
	APIKey      string
	AssistantID string
	HTTPTimeout time.Duration
}

type startRequest struct {
	AssistantID string `json:"assistantId"`
}

// RealtimeClient talks to the hosted voice API: calls are created and ended
// over REST, events are streamed over a websocket per call.
type RealtimeClient struct {
	cfg     Config
	http    *http.Client
	dialer  *websocket.Dialer
	emitter *Emitter
	logger  *slog.Logger

	mu     sync.Mutex
	callID string
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRealtimeClient(cfg Config, logger *slog.Logger) *RealtimeClient {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.WSURL == "" {
		cfg.WSURL = toWebSocketURL(cfg.APIURL)
	}

	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIKey,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = cfg.HTTPTimeout

	return &RealtimeClient{
		cfg:     cfg,
		http:    httpClient,
		dialer:  &websocket.Dialer{HandshakeTimeout: cfg.HTTPTimeout},
		emitter: NewEmitter(),
		logger:  logger.With("component", "voice_client"),
	}
}

func (c *RealtimeClient) On(event EventType, h Handler) Subscription {
	return c.emitter.On(event, h)
}

func (c *RealtimeClient) StartAssistant(ctx context.Context) (*Call, error) {
	body, err := json.Marshal(startRequest{AssistantID: c.cfg.AssistantID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/call"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("start call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("start call: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var call Call
	if err := json.NewDecoder(resp.Body).Decode(&call); err != nil {
		return nil, fmt.Errorf("decode call: %w", err)
	}
	if call.ID == "" {
		return &call, ErrMissingCallID
	}

	if err := c.attach(call.ID); err != nil {
		c.deleteCall(context.WithoutCancel(ctx), call.ID)
		return nil, err
	}

	c.logger.Info("call started", "call_id", call.ID)
	return &call, nil
}

func (c *RealtimeClient) StopAssistant(ctx context.Context) error {
	c.mu.Lock()
	callID := c.callID
	done := c.detachLocked()
	c.mu.Unlock()

	waitDone(done)

	if callID == "" {
		return ErrNoActiveCall
	}

	c.logger.Info("call stopping", "call_id", callID)
	return c.deleteCall(ctx, callID)
}

func (c *RealtimeClient) Close() error {
	c.mu.Lock()
	done := c.detachLocked()
	c.mu.Unlock()
	waitDone(done)
	return nil
}

func (c *RealtimeClient) attach(callID string) error {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	ws, _, err := c.dialer.Dial(c.eventsURL(callID), header)
	if err != nil {
		return fmt.Errorf("dial event stream: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var pumps sync.WaitGroup
	pumps.Add(2)
	done := make(chan struct{})
	go func() {
		pumps.Wait()
		close(done)
	}()

	c.mu.Lock()
	prev := c.detachLocked()
	c.callID = callID
	c.conn = ws
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go c.readPump(ctx, ws, callID, &pumps)
	go c.pingPump(ctx, ws, &pumps)
	waitDone(prev)
	return nil
}

// detachLocked tears down the current connection and returns a channel that
// closes once its pumps have exited, or nil when nothing was attached.
func (c *RealtimeClient) detachLocked() chan struct{} {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.callID = ""
	done := c.done
	c.done = nil
	return done
}

func waitDone(done chan struct{}) {
	if done != nil {
		<-done
	}
}

func (c *RealtimeClient) readPump(ctx context.Context, ws *websocket.Conn, callID string, pumps *sync.WaitGroup) {
	defer pumps.Done()

	ws.SetReadLimit(maxFrameSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Error("event stream read error", "call_id", callID, "error", err)
			}
			c.streamLost(callID)
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			c.logger.Warn("invalid event frame", "call_id", callID, "error", err)
			continue
		}
		if !ev.Type.Valid() {
			c.logger.Debug("ignoring event", "call_id", callID, "type", ev.Type)
			continue
		}
		if ev.CallID == "" {
			ev.CallID = callID
		}

		c.emitter.Emit(ev)

		if ev.Type == EventCallEnd {
			c.mu.Lock()
			if c.callID == callID {
				c.detachLocked()
			}
			c.mu.Unlock()
			return
		}
	}
}

// streamLost ends the call locally when the provider drops the stream
// without a call-end frame, so listeners never wait on a dead call.
func (c *RealtimeClient) streamLost(callID string) {
	c.mu.Lock()
	current := c.callID == callID
	if current {
		c.detachLocked()
	}
	c.mu.Unlock()

	if current {
		c.emitter.Emit(Event{Type: EventCallEnd, CallID: callID})
	}
}

func (c *RealtimeClient) pingPump(ctx context.Context, ws *websocket.Conn, pumps *sync.WaitGroup) {
	defer pumps.Done()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *RealtimeClient) deleteCall(ctx context.Context, callID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/call/"+url.PathEscape(callID)), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("stop call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("stop call: status %d", resp.StatusCode)
	}
	return nil
}

func (c *RealtimeClient) endpoint(path string) string {
	return strings.TrimRight(c.cfg.APIURL, "/") + path
}

func (c *RealtimeClient) eventsURL(callID string) string {
	return strings.TrimRight(c.cfg.WSURL, "/") + "/call/" + url.PathEscape(callID) + "/events"
}

func toWebSocketURL(apiURL string) string {
	switch {
	case strings.HasPrefix(apiURL, "https://"):
		return "wss://" + strings.TrimPrefix(apiURL, "https://")
	case strings.HasPrefix(apiURL, "http://"):
		return "ws://" + strings.TrimPrefix(apiURL, "http://")
	}
	return apiURL
}
