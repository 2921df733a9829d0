package voice

import (
	"context"
	"errors"
)

var (
	ErrNoActiveCall  = errors.New("no active call")
	ErrMissingCallID = errors.New("voice api returned no call id")
)

type Call struct {
	ID          string `json:"id"`
	AssistantID string `json:"assistantId,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Client is the boundary to the hosted voice assistant. StartAssistant
// returns once the provider has accepted the call; lifecycle, speech and
// volume updates arrive later through handlers registered with On.
type Client interface {
	StartAssistant(ctx context.Context) (*Call, error)
	StopAssistant(ctx context.Context) error
	On(event EventType, h Handler) Subscription
}
