package voice

import (
	"errors"
	"strings"
	"testing"
)

func TestTokenService_GenerateToken(t *testing.T) {
	svc := NewTokenService("api-key", "a-secret-that-is-long-enough-for-hmac", "wss://livekit.example.com")

	token, err := svc.GenerateToken("listener_1", RoomForCall("abc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("expected a JWT, got %q", token)
	}
	if svc.URL() != "wss://livekit.example.com" {
		t.Errorf("unexpected url %q", svc.URL())
	}
}

func TestTokenService_Disabled(t *testing.T) {
	svc := NewTokenService("", "", "")
	if svc.Enabled() {
		t.Fatal("expected service to be disabled")
	}

	_, err := svc.GenerateToken("listener_1", "room")
	if !errors.Is(err, ErrTokensDisabled) {
		t.Errorf("expected ErrTokensDisabled, got %v", err)
	}
}

func TestRoomForCall(t *testing.T) {
	if got := RoomForCall("abc"); got != "call_abc" {
		t.Errorf("expected call_abc, got %s", got)
	}
}

func TestNewListenerIdentity(t *testing.T) {
	a := NewListenerIdentity()
	b := NewListenerIdentity()
	if !strings.HasPrefix(a, "listener_") {
		t.Errorf("unexpected identity %q", a)
	}
	if a == b {
		t.Error("expected unique identities")
	}
}
