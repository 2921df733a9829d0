package dto

import "time"

type StoreConversationResponse struct {
	Status string `json:"status" example:"stored"`
	DBID   uint   `json:"db_id" example:"42"`
}

type GetContextRequest struct {
	Query string `json:"query" example:"what did the caller ask about pricing?"`
}

type GetContextResponse struct {
	Context []string `json:"context"`
}

type StructuredData map[string]any

type CallAnalysis struct {
	StructuredData StructuredData `json:"structuredData" swaggertype:"object"`
}

// CallDetailsResponse is empty until the call's end-of-call report has been
// stored; pollers treat an object without analysis and summary as not ready.
type CallDetailsResponse struct {
	CallID       string        `json:"callId,omitempty" example:"call_123"`
	Analysis     *CallAnalysis `json:"analysis,omitempty"`
	Summary      string        `json:"summary,omitempty" example:"Caller booked a demo for Friday."`
	Transcript   string        `json:"transcript,omitempty"`
	RecordingURL string        `json:"recordingUrl,omitempty" example:"https://storage.example.com/rec.wav"`
}

type ConversationSummary struct {
	ID        uint      `json:"id" example:"42"`
	CallID    string    `json:"call_id,omitempty" example:"call_123"`
	Summary   string    `json:"summary,omitempty" example:"Caller booked a demo for Friday."`
	Qualified bool      `json:"is_qualified"`
	CreatedAt time.Time `json:"created_at"`
}

type ListConversationsResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}

type ConversationResponse struct {
	ConversationSummary
	Transcript     string         `json:"transcript"`
	RecordingURL   string         `json:"recording_url,omitempty"`
	StructuredData StructuredData `json:"structured_data,omitempty" swaggertype:"object"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	EndedAt        *time.Time     `json:"ended_at,omitempty"`
}
