package repository

import (
	"context"
	"sync"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase/interfaces"
)

// QuoteMemoryRepository keeps quotes in process memory. It backs local runs
// (QUOTES_STORAGE=memory) and use case tests; it has the same contract as the
// DynamoDB repository, including the cascade on Delete.
type QuoteMemoryRepository struct {
	mu     sync.RWMutex
	quotes map[string]entities.Quote
	items  map[string]map[string]entities.LineItem
}

var _ interfaces.IQuoteRepository = (*QuoteMemoryRepository)(nil)

func NewQuoteMemoryRepository() *QuoteMemoryRepository {
	return &QuoteMemoryRepository{
		quotes: map[string]entities.Quote{},
		items:  map[string]map[string]entities.LineItem{},
	}
}

func (r *QuoteMemoryRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.quotes[q.ID]; exists {
		return entities.Quote{}, ErrQuoteAlreadyExists
	}
	r.quotes[q.ID] = q.Header()
	bucket := make(map[string]entities.LineItem, len(q.LineItems))
	for _, it := range q.LineItems {
		bucket[it.ID] = it
	}
	r.items[q.ID] = bucket
	return r.assemble(q.ID), nil
}

func (r *QuoteMemoryRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.quotes[id]; !ok {
		return entities.Quote{}, nil
	}
	return r.assemble(id), nil
}

func (r *QuoteMemoryRepository) List(_ context.Context, filter interfaces.QuoteFilter) ([]entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Quote, 0, len(r.quotes))
	for id := range r.quotes {
		q := r.assemble(id)
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	sortQuotes(out)
	return out, nil
}

func (r *QuoteMemoryRepository) UpdateHeader(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[q.ID]; !ok {
		return entities.Quote{}, nil
	}
	r.quotes[q.ID] = q.Header()
	return r.quotes[q.ID], nil
}

func (r *QuoteMemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[id]; !ok {
		return false, nil
	}
	delete(r.quotes, id)
	delete(r.items, id)
	return true, nil
}

func (r *QuoteMemoryRepository) PutItem(_ context.Context, item entities.LineItem, replace bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bucket, ok := r.items[item.QuoteID]
	if !ok {
		return false, nil
	}
	_, exists := bucket[item.ID]
	if replace != exists {
		return false, nil
	}
	bucket[item.ID] = item
	return true, nil
}

func (r *QuoteMemoryRepository) DeleteItem(_ context.Context, quoteID, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bucket, ok := r.items[quoteID]
	if !ok {
		return false, nil
	}
	if _, ok := bucket[itemID]; !ok {
		return false, nil
	}
	delete(bucket, itemID)
	return true, nil
}

// assemble must be called with the lock held.
func (r *QuoteMemoryRepository) assemble(id string) entities.Quote {
	q := r.quotes[id]
	items := make([]entities.LineItem, 0, len(r.items[id]))
	for _, it := range r.items[id] {
		items = append(items, it)
	}
	sortItems(items)
	q.LineItems = items
	return q
}
