package entities

import "time"

// QuoteStatus represents the lifecycle of a quote (orçamento).
//
// Any status may follow any other unless a stricter StatusPolicy is configured
// in the use case layer.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "PENDING"
	QuoteStatusApproved QuoteStatus = "APPROVED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
	QuoteStatusCanceled QuoteStatus = "CANCELED"
)

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusApproved, QuoteStatusRejected, QuoteStatusCanceled:
		return true
	}
	return false
}

// Quote is a priced proposal for a client.
//
// The total is never stored: it is derived from LineItems by the pricing
// package every time the quote is read.
type Quote struct {
	ID                 string      `json:"id"`
	ClientID           string      `json:"client_id"`
	OriginatingOrderID *string     `json:"originating_order_id,omitempty"`
	Status             QuoteStatus `json:"status"`
	ValidUntil         *time.Time  `json:"valid_until,omitempty"`
	Notes              string      `json:"notes,omitempty"`
	LineItems          []LineItem  `json:"line_items"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// IsIncomplete reports a quote whose header exists but has no items yet.
// This is a legitimate state (header created, items still to come or
// abandoned) and not a corruption.
func (q Quote) IsIncomplete() bool {
	return len(q.LineItems) == 0
}

// FindItem returns the index of the item with the given id, or -1.
func (q Quote) FindItem(itemID string) int {
	for i, it := range q.LineItems {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

// NextPosition returns the display position for an item appended to the quote.
func (q Quote) NextPosition() int {
	next := 0
	for _, it := range q.LineItems {
		if it.Position >= next {
			next = it.Position + 1
		}
	}
	return next
}

// Header returns a copy of the quote without its items.
func (q Quote) Header() Quote {
	q.LineItems = nil
	return q
}
