package voice

type EventType string

const (
	EventCallStart   EventType = "call-start"
	EventCallEnd     EventType = "call-end"
	EventSpeechStart EventType = "speech-start"
	EventSpeechEnd   EventType = "speech-end"
	EventVolumeLevel EventType = "volume-level"
)

// Events lists every event the SDK emits, in registration order.
var Events = []EventType{
	EventCallStart,
	EventCallEnd,
	EventSpeechStart,
	EventSpeechEnd,
	EventVolumeLevel,
}

func (t EventType) Valid() bool {
	switch t {
	case EventCallStart, EventCallEnd, EventSpeechStart, EventSpeechEnd, EventVolumeLevel:
		return true
	}
	return false
}

// Event is a single frame from the SDK event stream. Volume is only
// meaningful for volume-level events.
type Event struct {
	Type   EventType `json:"type"`
	CallID string    `json:"call_id,omitempty"`
	Volume float64   `json:"volume,omitempty"`
}
