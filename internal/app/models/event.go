package models

import "time"

// DomainEvent is the envelope published to the events queue.
type DomainEvent struct {
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	RequestID  string      `json:"request_id,omitempty"`
	Data       interface{} `json:"data"`
}
