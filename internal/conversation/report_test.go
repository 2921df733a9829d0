package conversation

import (
	"errors"
	"testing"
	"time"
)

func TestReport_Conversation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantErr        error
		wantTranscript string
		wantSummary    string
		wantCallID     string
		wantRecording  string
		wantQualified  bool
	}{
		{
			name: "full report",
			body: `{"message":{"type":"end-of-call-report",
				"artifact":{"transcript":"AI: hi\nUser: hello","recordingUrl":"https://rec/1.wav"},
				"analysis":{"summary":"Booked a demo.","structuredData":{"is_qualified":true}},
				"startedAt":"2026-01-15T10:00:00Z","endedAt":"2026-01-15T10:05:30.123Z",
				"call":{"id":"call_1"}}}`,
			wantTranscript: "AI: hi\nUser: hello",
			wantSummary:    "Booked a demo.",
			wantCallID:     "call_1",
			wantRecording:  "https://rec/1.wav",
			wantQualified:  true,
		},
		{
			name:           "falls back to top-level transcript and summary",
			body:           `{"message":{"type":"end-of-call-report","transcript":"plain","summary":"short"}}`,
			wantTranscript: "plain",
			wantSummary:    "short",
		},
		{
			name:           "artifact transcript wins",
			body:           `{"message":{"type":"end-of-call-report","transcript":"plain","artifact":{"transcript":"formatted"}}}`,
			wantTranscript: "formatted",
		},
		{
			name:    "wrong type",
			body:    `{"message":{"type":"status-update","transcript":"x"}}`,
			wantErr: ErrInvalidReport,
		},
		{
			name:    "missing message",
			body:    `{"type":"end-of-call-report"}`,
			wantErr: ErrInvalidReport,
		},
		{
			name:    "missing transcript",
			body:    `{"message":{"type":"end-of-call-report","summary":"s"}}`,
			wantErr: ErrMissingTranscript,
		},
		{
			name:    "bad timestamp",
			body:    `{"message":{"type":"end-of-call-report","transcript":"t","startedAt":"yesterday"}}`,
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeReport([]byte(tt.body))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}

			c, err := r.Conversation()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if c.Transcript != tt.wantTranscript {
				t.Errorf("transcript = %q, want %q", c.Transcript, tt.wantTranscript)
			}
			if c.Summary != tt.wantSummary {
				t.Errorf("summary = %q, want %q", c.Summary, tt.wantSummary)
			}
			if c.CallID != tt.wantCallID {
				t.Errorf("call id = %q, want %q", c.CallID, tt.wantCallID)
			}
			if c.RecordingURL != tt.wantRecording {
				t.Errorf("recording = %q, want %q", c.RecordingURL, tt.wantRecording)
			}
			if c.StructuredData.Bool("is_qualified") != tt.wantQualified {
				t.Errorf("is_qualified = %v, want %v", c.StructuredData.Bool("is_qualified"), tt.wantQualified)
			}
		})
	}
}

func TestReport_Timestamps(t *testing.T) {
	r, _ := DecodeReport([]byte(`{"message":{"type":"end-of-call-report","transcript":"t",
		"startedAt":"2026-01-15T10:00:00Z","endedAt":"2026-01-15T10:05:00"}}`))

	c, err := r.Conversation()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.StartedAt == nil || !c.StartedAt.Equal(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected startedAt %v", c.StartedAt)
	}
	if c.EndedAt == nil || c.EndedAt.Sub(*c.StartedAt) != 5*time.Minute {
		t.Errorf("unexpected endedAt %v", c.EndedAt)
	}
}

func TestDecodeReport_NotAnObject(t *testing.T) {
	for _, body := range []string{`[1,2]`, `"text"`, `nope`} {
		if _, err := DecodeReport([]byte(body)); !errors.Is(err, ErrInvalidReport) {
			t.Errorf("DecodeReport(%s): expected ErrInvalidReport, got %v", body, err)
		}
	}
}

func TestSummaryDocID(t *testing.T) {
	if got := SummaryDocID(42); got != "summary_42" {
		t.Errorf("expected summary_42, got %s", got)
	}
}
