package callstate

import (
	"errors"
	"testing"

	"github.com/eleven-am/voice-console/internal/voice"
)

func TestInitial(t *testing.T) {
	s := Initial()
	if s.Phase != PhaseIdle {
		t.Errorf("expected idle, got %s", s.Phase)
	}
	if s.View() != ViewStart {
		t.Errorf("expected start view, got %s", s.View())
	}
}

func TestApply_EventTable(t *testing.T) {
	tests := []struct {
		name      string
		from      State
		event     voice.Event
		wantFlags Flags
		wantSpeak bool
		wantVol   float64
	}{
		{
			name:      "call-start clears loading and sets started",
			from:      State{Phase: PhaseStarting, CallID: "c1"},
			event:     voice.Event{Type: voice.EventCallStart},
			wantFlags: Flags{Started: true, CallID: "c1"},
		},
		{
			name:      "call-start from idle",
			from:      Initial(),
			event:     voice.Event{Type: voice.EventCallStart},
			wantFlags: Flags{Started: true},
		},
		{
			name:      "call-end clears started",
			from:      State{Phase: PhaseActive, CallID: "c1"},
			event:     voice.Event{Type: voice.EventCallEnd},
			wantFlags: Flags{},
		},
		{
			name:      "call-end clears loading",
			from:      State{Phase: PhaseStarting},
			event:     voice.Event{Type: voice.EventCallEnd},
			wantFlags: Flags{},
		},
		{
			name:      "speech-start",
			from:      State{Phase: PhaseActive},
			event:     voice.Event{Type: voice.EventSpeechStart},
			wantFlags: Flags{Started: true},
			wantSpeak: true,
		},
		{
			name:      "speech-end",
			from:      State{Phase: PhaseActive, Speech: Speech{AssistantIsSpeaking: true}},
			event:     voice.Event{Type: voice.EventSpeechEnd},
			wantFlags: Flags{Started: true},
		},
		{
			name:      "volume-level",
			from:      State{Phase: PhaseActive},
			event:     voice.Event{Type: voice.EventVolumeLevel, Volume: 0.73},
			wantFlags: Flags{Started: true},
			wantVol:   0.73,
		},
		{
			name:      "volume-level is not validated",
			from:      State{Phase: PhaseActive},
			event:     voice.Event{Type: voice.EventVolumeLevel, Volume: 1.7},
			wantFlags: Flags{Started: true},
			wantVol:   1.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.Apply(tt.event)
			if got.Flags() != tt.wantFlags {
				t.Errorf("flags = %+v, want %+v", got.Flags(), tt.wantFlags)
			}
			if got.Speech.AssistantIsSpeaking != tt.wantSpeak {
				t.Errorf("assistantIsSpeaking = %v, want %v", got.Speech.AssistantIsSpeaking, tt.wantSpeak)
			}
			if got.Speech.VolumeLevel != tt.wantVol {
				t.Errorf("volumeLevel = %v, want %v", got.Speech.VolumeLevel, tt.wantVol)
			}
		})
	}
}

func TestApply_LifecycleEventsLeaveResultAlone(t *testing.T) {
	result := CallResult{Summary: "ok"}
	fetching := State{Phase: PhaseFetchingResult, CallID: "c1"}
	ready := fetching.ResultReady(result)

	for _, s := range []State{fetching, ready} {
		for _, ev := range []voice.EventType{voice.EventCallStart, voice.EventCallEnd} {
			got := s.Apply(voice.Event{Type: ev})
			if got.Phase != s.Phase {
				t.Errorf("%s in %s moved to %s", ev, s.Phase, got.Phase)
			}
		}
	}
}

func TestApply_EventSequences(t *testing.T) {
	sequences := [][]voice.Event{
		{
			{Type: voice.EventCallStart},
			{Type: voice.EventSpeechStart},
			{Type: voice.EventVolumeLevel, Volume: 0.2},
			{Type: voice.EventSpeechEnd},
			{Type: voice.EventCallEnd},
		},
		{
			{Type: voice.EventSpeechStart},
			{Type: voice.EventCallEnd},
			{Type: voice.EventCallStart},
			{Type: voice.EventVolumeLevel, Volume: 0.9},
		},
		{
			{Type: voice.EventCallEnd},
			{Type: voice.EventCallEnd},
			{Type: voice.EventSpeechEnd},
		},
	}

	for i, seq := range sequences {
		s, _ := Initial().Begin()
		started, loading := false, true
		speaking, volume := false, 0.0

		for _, ev := range seq {
			s = s.Apply(ev)
			switch ev.Type {
			case voice.EventCallStart:
				loading, started = false, true
			case voice.EventCallEnd:
				started, loading = false, false
			case voice.EventSpeechStart:
				speaking = true
			case voice.EventSpeechEnd:
				speaking = false
			case voice.EventVolumeLevel:
				volume = ev.Volume
			}

			f := s.Flags()
			if f.Started != started || f.Loading != loading {
				t.Fatalf("sequence %d after %s: started=%v loading=%v, want started=%v loading=%v",
					i, ev.Type, f.Started, f.Loading, started, loading)
			}
			if s.Speech.AssistantIsSpeaking != speaking || s.Speech.VolumeLevel != volume {
				t.Fatalf("sequence %d after %s: speech=%+v, want speaking=%v volume=%v",
					i, ev.Type, s.Speech, speaking, volume)
			}
		}
	}
}

func TestBegin(t *testing.T) {
	s, err := Initial().Begin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Flags().Loading {
		t.Error("expected loading after begin")
	}

	if _, err := s.Begin(); !errors.Is(err, ErrNotIdle) {
		t.Errorf("expected ErrNotIdle, got %v", err)
	}
}

func TestBegin_ClearsPreviousError(t *testing.T) {
	s := State{Phase: PhaseIdle, Error: "boom"}
	next, err := s.Begin()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Error != "" {
		t.Errorf("expected error to be cleared, got %q", next.Error)
	}
}

func TestStarted(t *testing.T) {
	starting, _ := Initial().Begin()

	if got := starting.Started("c1"); got.CallID != "c1" {
		t.Errorf("expected call id on starting, got %q", got.CallID)
	}

	active := starting.Apply(voice.Event{Type: voice.EventCallStart})
	if got := active.Started("c1"); got.CallID != "c1" {
		t.Errorf("expected call id on active, got %q", got.CallID)
	}

	if got := Initial().Started("c1"); got.CallID != "" {
		t.Errorf("expected stale id to be ignored, got %q", got.CallID)
	}
}

func TestStartFailed_NeverLeavesLoading(t *testing.T) {
	starting, _ := Initial().Begin()
	got := starting.StartFailed()
	if got.Flags().Loading {
		t.Error("loading should be false after start failure")
	}
	if got.View() != ViewStart {
		t.Errorf("expected start view, got %s", got.View())
	}
}

func TestReset_FullReset(t *testing.T) {
	ready := State{Phase: PhaseFetchingResult, CallID: "c1"}.ResultReady(CallResult{Summary: "ok"})
	states := []State{
		Initial(),
		{Phase: PhaseStarting},
		{Phase: PhaseActive, CallID: "c1"},
		{Phase: PhaseFetchingResult, CallID: "c1"},
		ready,
	}

	want := Flags{}
	for _, s := range states {
		got := s.Reset()
		if got.Flags() != want {
			t.Errorf("reset from %s: flags = %+v, want %+v", s.Phase, got.Flags(), want)
		}
	}
}

func TestResultLifecycle(t *testing.T) {
	active := State{Phase: PhaseActive, CallID: "c1"}
	fetching := active.AwaitResult()
	if !fetching.Flags().LoadingResult {
		t.Fatal("expected loadingResult")
	}
	if fetching.CallID != "c1" {
		t.Errorf("expected call id to be kept, got %q", fetching.CallID)
	}

	result := CallResult{
		Analysis: Analysis{StructuredData: StructuredData{IsQualified: true}},
		Summary:  "ok",
	}
	ready := fetching.ResultReady(result)
	if ready.Flags().LoadingResult {
		t.Error("expected loadingResult to be cleared")
	}
	if ready.Result == nil || *ready.Result != result {
		t.Errorf("expected result %+v, got %+v", result, ready.Result)
	}

	failed := fetching.ResultFailed(errors.New("bad gateway"))
	if failed.Phase != PhaseIdle || failed.Error != "bad gateway" {
		t.Errorf("expected idle with error, got %+v", failed)
	}

	if got := active.ResultReady(result); got.Result != nil {
		t.Error("result should only land while fetching")
	}
}

// reachable walks every state reachable from Initial through the state's
// own transitions.
func reachable() []State {
	ops := []func(State) State{
		func(s State) State { n, _ := s.Begin(); return n },
		func(s State) State { return s.Started("c1") },
		func(s State) State { return s.StartFailed() },
		func(s State) State { return s.Reset() },
		func(s State) State {
			if s.CallID == "" {
				return s
			}
			return s.AwaitResult()
		},
		func(s State) State { return s.ResultReady(CallResult{Summary: "ok"}) },
		func(s State) State { return s.ResultFailed(errors.New("x")) },
	}
	for _, ev := range voice.Events {
		ev := ev
		ops = append(ops, func(s State) State { return s.Apply(voice.Event{Type: ev, Volume: 0.5}) })
	}

	type key struct {
		phase     Phase
		callID    string
		hasResult bool
		err       string
	}
	seen := map[key]State{}
	queue := []State{Initial()}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		k := key{s.Phase, s.CallID, s.Result != nil, s.Error}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = s
		for _, op := range ops {
			queue = append(queue, op(s))
		}
	}

	out := make([]State, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	return out
}

func TestView_ExactlyOneForReachableStates(t *testing.T) {
	states := reachable()
	if len(states) < 5 {
		t.Fatalf("expected at least one state per phase, got %d", len(states))
	}

	for _, s := range states {
		f := s.Flags()
		showStart := !f.Loading && !f.Started && !f.LoadingResult && f.CallResult == nil
		showLoading := f.Loading || f.LoadingResult
		showActive := f.Started
		showResult := !f.LoadingResult && f.CallResult != nil

		visible := 0
		for _, v := range []bool{showStart, showLoading, showActive, showResult} {
			if v {
				visible++
			}
		}
		if visible != 1 {
			t.Errorf("state %+v shows %d views", s, visible)
		}

		var want View
		switch {
		case showResult:
			want = ViewResult
		case showLoading:
			want = ViewLoading
		case showActive:
			want = ViewActiveCall
		default:
			want = ViewStart
		}
		if s.View() != want {
			t.Errorf("state %+v: view = %s, want %s", s, s.View(), want)
		}
	}
}

func TestReachable_InvariantsHold(t *testing.T) {
	for _, s := range reachable() {
		if (s.Result != nil) != (s.Phase == PhaseResultReady) {
			t.Errorf("result presence disagrees with phase: %+v", s)
		}
		if s.Phase == PhaseIdle && s.CallID != "" {
			t.Errorf("idle state carries a call id: %+v", s)
		}
		if s.Phase == PhaseFetchingResult && s.CallID == "" {
			t.Errorf("fetching without a call id: %+v", s)
		}
	}
}

func TestSnapshot(t *testing.T) {
	s := State{Phase: PhaseActive, CallID: "c1", Speech: Speech{AssistantIsSpeaking: true, VolumeLevel: 0.3}}
	snap := s.Snapshot(7)

	if snap.Version != 7 {
		t.Errorf("expected version 7, got %d", snap.Version)
	}
	if snap.View != ViewActiveCall {
		t.Errorf("expected active_call view, got %s", snap.View)
	}
	if !snap.Started || snap.CallID != "c1" {
		t.Errorf("unexpected flags %+v", snap.Flags)
	}
	if !snap.AssistantIsSpeaking || snap.VolumeLevel != 0.3 {
		t.Errorf("unexpected speech %+v", snap.Speech)
	}
}
