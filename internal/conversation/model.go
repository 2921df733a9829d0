package conversation

import (
	"strconv"
	"time"

	"github.com/eleven-am/voice-console/internal/shared"
)

type Conversation struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CallID         string         `gorm:"index" json:"call_id,omitempty"`
	Transcript     string         `gorm:"type:text" json:"transcript"`
	Summary        string         `gorm:"type:text" json:"summary,omitempty"`
	RecordingURL   string         `gorm:"size:255" json:"recording_url,omitempty"`
	StructuredData shared.JSONMap `gorm:"type:json" json:"structured_data,omitempty"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	EndedAt        *time.Time     `json:"ended_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Ready reports whether the conversation carries the analysis a call
// details poller waits for.
func (c *Conversation) Ready() bool {
	return c.Summary != ""
}

func SummaryDocID(id uint) string {
	return "summary_" + strconv.FormatUint(uint64(id), 10)
}
