package models

import "time"

// Journal event types.
const (
	EventSession      = "SESSION"
	EventAlert        = "ALERT"
	EventConnectivity = "CONNECTIVITY"
)

// StationEvent is a single journal entry.
type StationEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // SESSION | ALERT | CONNECTIVITY
	Description string    `json:"description"` // human-readable, same text as the status topic
	Metadata    any       `json:"metadata,omitempty"`
}
