package callstate

import (
	"errors"

	"github.com/eleven-am/voice-console/internal/voice"
)

var ErrNotIdle = errors.New("call already in progress")

type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseStarting       Phase = "starting"
	PhaseActive         Phase = "active"
	PhaseFetchingResult Phase = "fetching_result"
	PhaseResultReady    Phase = "result_ready"
)

type Speech struct {
	AssistantIsSpeaking bool    `json:"assistant_is_speaking"`
	VolumeLevel         float64 `json:"volume_level"`
}

// State is the console's view of one call. CallID is only meaningful outside
// PhaseIdle and Result only in PhaseResultReady; transitions go through the
// methods below so those fields never disagree with Phase.
type State struct {
	Phase  Phase
	CallID string
	Result *CallResult
	Error  string
	Speech Speech
}

func Initial() State {
	return State{Phase: PhaseIdle}
}

func (s State) Begin() (State, error) {
	if s.Phase != PhaseIdle {
		return s, ErrNotIdle
	}
	return State{Phase: PhaseStarting, Speech: s.Speech}, nil
}

// Started records the provider's call id. A call-start event may already
// have moved the state to active; a call-end may have dropped it to idle, in
// which case the id is stale and ignored.
func (s State) Started(callID string) State {
	if s.Phase == PhaseStarting || s.Phase == PhaseActive {
		s.CallID = callID
	}
	return s
}

func (s State) StartFailed() State {
	if s.Phase != PhaseStarting {
		return s
	}
	return State{Phase: PhaseIdle, Speech: s.Speech}
}

func (s State) Reset() State {
	return State{Phase: PhaseIdle, Speech: s.Speech}
}

func (s State) AwaitResult() State {
	return State{Phase: PhaseFetchingResult, CallID: s.CallID, Speech: s.Speech}
}

func (s State) ResultReady(r CallResult) State {
	if s.Phase != PhaseFetchingResult {
		return s
	}
	return State{Phase: PhaseResultReady, CallID: s.CallID, Result: &r, Speech: s.Speech}
}

func (s State) ResultFailed(err error) State {
	if s.Phase != PhaseFetchingResult {
		return s
	}
	next := State{Phase: PhaseIdle, Speech: s.Speech}
	if err != nil {
		next.Error = err.Error()
	}
	return next
}

// Apply folds one SDK event into the state.
func (s State) Apply(ev voice.Event) State {
	switch ev.Type {
	case voice.EventCallStart:
		if s.Phase == PhaseIdle || s.Phase == PhaseStarting {
			s.Phase = PhaseActive
			s.Error = ""
		}
	case voice.EventCallEnd:
		if s.Phase == PhaseStarting || s.Phase == PhaseActive {
			s = State{Phase: PhaseIdle, Speech: s.Speech}
		}
	case voice.EventSpeechStart:
		s.Speech.AssistantIsSpeaking = true
	case voice.EventSpeechEnd:
		s.Speech.AssistantIsSpeaking = false
	case voice.EventVolumeLevel:
		s.Speech.VolumeLevel = ev.Volume
	}
	return s
}

// Flags projects the state onto the booleans the templates and the browser
// read.
type Flags struct {
	Started       bool        `json:"started"`
	Loading       bool        `json:"loading"`
	LoadingResult bool        `json:"loading_result"`
	CallID        string      `json:"call_id"`
	CallResult    *CallResult `json:"call_result"`
}

func (s State) Flags() Flags {
	return Flags{
		Started:       s.Phase == PhaseActive,
		Loading:       s.Phase == PhaseStarting,
		LoadingResult: s.Phase == PhaseFetchingResult,
		CallID:        s.CallID,
		CallResult:    s.Result,
	}
}
