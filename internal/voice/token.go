package voice

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/livekit/protocol/auth"
)

var ErrTokensDisabled = errors.New("livekit credentials not configured")

const tokenTTL = 2 * time.Hour

// TokenService issues LiveKit join tokens so the browser's audio client can
// enter the room that carries a call.
type TokenService struct {
	apiKey    string
	apiSecret string
	url       string
}

func NewTokenService(apiKey, apiSecret, url string) *TokenService {
	return &TokenService{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		url:       url,
	}
}

func (s *TokenService) URL() string {
	return s.url
}

func (s *TokenService) Enabled() bool {
	return s.apiKey != "" && s.apiSecret != ""
}

func (s *TokenService) GenerateToken(identity, room string) (string, error) {
	if !s.Enabled() {
		return "", ErrTokensDisabled
	}

	at := auth.NewAccessToken(s.apiKey, s.apiSecret)

	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     room,
	}

	at.SetIdentity(identity).
		SetValidFor(tokenTTL).
		SetVideoGrant(grant)

	return at.ToJWT()
}

func RoomForCall(callID string) string {
	return "call_" + callID
}

func NewListenerIdentity() string {
	return "listener_" + uuid.NewString()
}
