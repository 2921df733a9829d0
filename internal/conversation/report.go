package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const reportType = "end-of-call-report"

var (
	ErrInvalidReport     = errors.New("payload is not an end-of-call report")
	ErrMissingTranscript = errors.New("missing transcript in payload")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
)

// Report is the end-of-call webhook body sent by the voice provider. Only
// the fields the console keeps are decoded.
type Report struct {
	Message *ReportMessage `json:"message"`
}

type ReportMessage struct {
	Type       string          `json:"type"`
	Transcript *string         `json:"transcript"`
	Summary    *string         `json:"summary"`
	StartedAt  string          `json:"startedAt"`
	EndedAt    string          `json:"endedAt"`
	Artifact   *ReportArtifact `json:"artifact"`
	Analysis   *ReportAnalysis `json:"analysis"`
	Call       *ReportCall     `json:"call"`
}

type ReportArtifact struct {
	Transcript   *string `json:"transcript"`
	RecordingURL string  `json:"recordingUrl"`
}

type ReportAnalysis struct {
	Summary        *string        `json:"summary"`
	StructuredData map[string]any `json:"structuredData"`
}

type ReportCall struct {
	ID string `json:"id"`
}

func DecodeReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	return &r, nil
}

// Conversation maps the report onto a row. Transcript and summary prefer
// the artifact and analysis blocks and fall back to the top-level fields
// when those keys are absent.
func (r *Report) Conversation() (*Conversation, error) {
	m := r.Message
	if m == nil || m.Type != reportType {
		return nil, ErrInvalidReport
	}

	transcript := m.Transcript
	if m.Artifact != nil && m.Artifact.Transcript != nil {
		transcript = m.Artifact.Transcript
	}
	if transcript == nil || *transcript == "" {
		return nil, ErrMissingTranscript
	}

	summary := m.Summary
	if m.Analysis != nil && m.Analysis.Summary != nil {
		summary = m.Analysis.Summary
	}

	startedAt, err := parseTimestamp(m.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("startedAt: %w", err)
	}
	endedAt, err := parseTimestamp(m.EndedAt)
	if err != nil {
		return nil, fmt.Errorf("endedAt: %w", err)
	}

	c := &Conversation{
		Transcript: *transcript,
		StartedAt:  startedAt,
		EndedAt:    endedAt,
	}
	if summary != nil {
		c.Summary = *summary
	}
	if m.Artifact != nil {
		c.RecordingURL = m.Artifact.RecordingURL
	}
	if m.Analysis != nil && len(m.Analysis.StructuredData) > 0 {
		c.StructuredData = m.Analysis.StructuredData
	}
	if m.Call != nil {
		c.CallID = m.Call.ID
	}
	return c, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
