package events

import (
	"encoding/json"
	"time"
)

// Envelope is the shared event shape carried over the in-process broker.
// Payloads are pre-marshalled so the broker stays schema-agnostic.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAtUTC time.Time       `json:"occurred_at_utc"`
	Payload       json.RawMessage `json:"payload"`
}
