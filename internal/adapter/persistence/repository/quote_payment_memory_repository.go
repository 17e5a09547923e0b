package repository

import (
	"context"
	"sort"
	"sync"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase/interfaces"
)

// QuotePaymentMemoryRepository is the in-process counterpart of
// QuotePaymentDynamoRepository, used with QUOTES_STORAGE=memory.
type QuotePaymentMemoryRepository struct {
	mu       sync.RWMutex
	payments map[string]entities.QuotePayment
}

var _ interfaces.IQuotePaymentRepository = (*QuotePaymentMemoryRepository)(nil)

func NewQuotePaymentMemoryRepository() *QuotePaymentMemoryRepository {
	return &QuotePaymentMemoryRepository{payments: map[string]entities.QuotePayment{}}
}

func (r *QuotePaymentMemoryRepository) Create(_ context.Context, p entities.QuotePayment) (entities.QuotePayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; ok {
		return entities.QuotePayment{}, ErrPaymentAlreadyExists
	}
	r.payments[p.ID] = p
	return p, nil
}

func (r *QuotePaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.QuotePayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.payments[id], nil
}

func (r *QuotePaymentMemoryRepository) ListByQuoteID(_ context.Context, quoteID string) ([]entities.QuotePayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entities.QuotePayment{}
	for _, p := range r.payments {
		if p.QuoteID == quoteID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
