package interfaces

import (
	"context"

	"fieldservice_quotes/internal/domain/entities"
)

// IQuoteEventPublisher notifies downstream collaborators (export, PDF) of quote changes.
type IQuoteEventPublisher interface {
	Publish(ctx context.Context, event entities.QuoteEvent) error
}
