package interfaces

import (
	"context"

	"fieldservice_quotes/internal/domain/entities"
)

// QuoteFilter narrows List results. Zero values mean "any".
type QuoteFilter struct {
	ClientID       string
	Status         entities.QuoteStatus
	OnlyIncomplete bool
}

// Matches reports whether q passes the filter.
func (f QuoteFilter) Matches(q entities.Quote) bool {
	if f.ClientID != "" && q.ClientID != f.ClientID {
		return false
	}
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.OnlyIncomplete && !q.IsIncomplete() {
		return false
	}
	return true
}

// IQuoteRepository abstracts persistence of quotes and their line items.
//
// Lookups return a zero-value entity (empty ID) when nothing is found; mutations
// report "found" through the bool result. Items are returned ordered by Position.
//
// Create persists the header and any items of q in a single transaction.
// Delete removes every item and then the header; an interrupted Delete leaves
// the quote readable and can be repeated.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]entities.Quote, error)
	UpdateHeader(ctx context.Context, q entities.Quote) (entities.Quote, error)
	Delete(ctx context.Context, id string) (bool, error)
	PutItem(ctx context.Context, item entities.LineItem, replace bool) (bool, error)
	DeleteItem(ctx context.Context, quoteID, itemID string) (bool, error)
}
