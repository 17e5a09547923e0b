package entities

import "time"

type QuoteEventType string

const (
	QuoteEventCreated       QuoteEventType = "quote.created"
	QuoteEventStatusChanged QuoteEventType = "quote.status_changed"
	QuoteEventDeleted       QuoteEventType = "quote.deleted"
)

type QuoteEvent struct {
	Type           QuoteEventType `json:"type"`
	QuoteID        string         `json:"quote_id"`
	ClientID       string         `json:"client_id"`
	Status         QuoteStatus    `json:"status,omitempty"`
	PreviousStatus QuoteStatus    `json:"previous_status,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}
