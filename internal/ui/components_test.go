package ui

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/eleven-am/voice-console/internal/callstate"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := MustRenderer().Execute(&buf, name, data); err != nil {
		t.Fatalf("render %s failed: %v", name, err)
	}
	return buf.String()
}

func TestVolumeLevel(t *testing.T) {
	tests := []struct {
		volume      float64
		wantLit     int
		wantDisplay string
	}{
		{0, 0, "0.00"},
		{0.05, 1, "0.05"},
		{0.1, 1, "0.10"},
		{0.42, 5, "0.42"},
		{1, 10, "1.00"},
		{1.7, 10, "1.00"},
		{-0.3, 0, "0.00"},
		{math.NaN(), 0, "0.00"},
	}

	for _, tt := range tests {
		v := VolumeLevel{Volume: tt.volume}
		lit := 0
		for _, b := range v.Bars() {
			if b {
				lit++
			}
		}
		if len(v.Bars()) != 10 {
			t.Errorf("volume %v: expected 10 bars, got %d", tt.volume, len(v.Bars()))
		}
		if lit != tt.wantLit {
			t.Errorf("volume %v: expected %d lit bars, got %d", tt.volume, tt.wantLit, lit)
		}
		if v.Display() != tt.wantDisplay {
			t.Errorf("volume %v: expected %s, got %s", tt.volume, tt.wantDisplay, v.Display())
		}
	}
}

func TestVolumeLevel_Render(t *testing.T) {
	out := render(t, "volume_level", VolumeLevel{Volume: 0.3})
	if n := strings.Count(out, `class="volume-bar lit"`); n != 3 {
		t.Errorf("expected 3 lit bars, got %d", n)
	}
	if n := strings.Count(out, `class="volume-bar"`); n != 7 {
		t.Errorf("expected 7 unlit bars, got %d", n)
	}
	if !strings.Contains(out, "0.30") {
		t.Error("expected numeric value")
	}
}

func TestAssistantVoiceVisualizer(t *testing.T) {
	speaking := render(t, "assistant_visualizer", AssistantVoiceVisualizer{IsSpeaking: true})
	if !strings.Contains(speaking, "Assistant:") || !strings.Contains(speaking, "speech-indicator speaking") {
		t.Errorf("unexpected speaking markup: %s", speaking)
	}

	silent := render(t, "assistant_visualizer", AssistantVoiceVisualizer{})
	if !strings.Contains(silent, "speech-indicator not-speaking") {
		t.Errorf("unexpected silent markup: %s", silent)
	}
}

func TestUserVoiceVisualizer(t *testing.T) {
	out := render(t, "user_visualizer", UserVoiceVisualizer{Volume: 0.5})
	if !strings.Contains(out, "user-volume-visualizer") || !strings.Contains(out, "0.50") {
		t.Errorf("unexpected markup: %s", out)
	}
}

func TestActiveCallDetails(t *testing.T) {
	out := render(t, "active_call", ActiveCallDetails{
		AssistantIsSpeaking: true,
		VolumeLevel:         0.2,
		EndCallAction:       "/call/stop",
	})
	for _, want := range []string{"speech-indicator speaking", "0.20", `action="/call/stop"`, "End Call"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %s", want, out)
		}
	}
}

func snapshotFor(s callstate.State) callstate.Snapshot {
	return s.Snapshot(1)
}

func TestApp_SingleView(t *testing.T) {
	result := callstate.CallResult{
		Analysis: callstate.Analysis{StructuredData: callstate.StructuredData{IsQualified: true}},
		Summary:  "Booked a demo.",
	}
	fetching := callstate.State{Phase: callstate.PhaseFetchingResult, CallID: "c1"}

	tests := []struct {
		name    string
		state   callstate.State
		want    []string
		notWant []string
	}{
		{
			name:    "start",
			state:   callstate.Initial(),
			want:    []string{"Start Conversation"},
			notWant: []string{"loading", "End Call", "Qualified"},
		},
		{
			name:    "starting",
			state:   callstate.State{Phase: callstate.PhaseStarting},
			want:    []string{`class="loading"`},
			notWant: []string{"Start Conversation", "End Call", "Loading call details"},
		},
		{
			name:    "fetching result",
			state:   fetching,
			want:    []string{"Loading call details... please wait", `class="loading"`},
			notWant: []string{"Start Conversation", "End Call"},
		},
		{
			name:    "active",
			state:   callstate.State{Phase: callstate.PhaseActive, CallID: "c1"},
			want:    []string{"End Call", "Assistant:"},
			notWant: []string{"Start Conversation", `class="loading"`},
		},
		{
			name:    "result",
			state:   fetching.ResultReady(result),
			want:    []string{"Qualified: true", "Booked a demo."},
			notWant: []string{"Start Conversation", "End Call", `class="loading"`},
		},
		{
			name:    "poll error",
			state:   callstate.State{Phase: callstate.PhaseIdle, Error: "status 500"},
			want:    []string{"Start Conversation", "status 500"},
			notWant: []string{"End Call"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, "app", App{Snapshot: snapshotFor(tt.state), Actions: DefaultActions})
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in %s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("did not expect %q in %s", w, out)
				}
			}
		})
	}
}

func TestApp_EscapesSummary(t *testing.T) {
	fetching := callstate.State{Phase: callstate.PhaseFetchingResult, CallID: "c1"}
	ready := fetching.ResultReady(callstate.CallResult{Summary: "<script>x</script>"})
	out := render(t, "app", App{Snapshot: snapshotFor(ready), Actions: DefaultActions})
	if strings.Contains(out, "<script>x</script>") {
		t.Error("summary must be escaped")
	}
	if !strings.Contains(out, "Qualified: false") {
		t.Error("expected unqualified result")
	}
}

func TestPage(t *testing.T) {
	out := render(t, "page", Page{
		Title:     "Voice Console",
		App:       App{Snapshot: snapshotFor(callstate.Initial()), Actions: DefaultActions},
		EventsURL: "/call/events",
		ViewURL:   "/call/view",
		TokenURL:  "/call/token",
	})
	for _, want := range []string{"<title>Voice Console</title>", "Start Conversation", "EventSource", `id="app-root"`, "voice-console:token"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in page", want)
		}
	}
	if !strings.Contains(out, "/call/token") && !strings.Contains(out, `\/call\/token`) {
		t.Error("expected token URL in page script")
	}
}
