package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"fieldservice_quotes/internal/adapter/persistence/repository"
	"fieldservice_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	clients      map[string]entities.Client
	parts        map[string]entities.Part
	serviceTypes map[string]entities.ServiceType
	orders       map[string]entities.ServiceOrder
	err          error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		clients: map[string]entities.Client{
			"c-1": {ID: "c-1", Name: "Oficina Central"},
			"c-2": {ID: "c-2", Name: "Frota Sul"},
		},
		parts: map[string]entities.Part{
			"p-1": {ID: "p-1", Name: "Brake pad", Code: "BP-01"},
		},
		serviceTypes: map[string]entities.ServiceType{
			"st-1": {ID: "st-1", Description: "Brake service"},
		},
		orders: map[string]entities.ServiceOrder{
			"so-1": {ID: "so-1", ClientID: "c-1", Identifier: "OS-0001"},
			"so-2": {ID: "so-2", ClientID: "c-1", Identifier: "OS-0002"},
			"so-3": {ID: "so-3", ClientID: "c-2", Identifier: "OS-0003"},
		},
	}
}

func (f *fakeCatalog) GetClient(_ context.Context, id string) (entities.Client, error) {
	return f.clients[id], f.err
}

func (f *fakeCatalog) GetPart(_ context.Context, id string) (entities.Part, error) {
	return f.parts[id], f.err
}

func (f *fakeCatalog) GetServiceType(_ context.Context, id string) (entities.ServiceType, error) {
	return f.serviceTypes[id], f.err
}

func (f *fakeCatalog) GetServiceOrder(_ context.Context, id string) (entities.ServiceOrder, error) {
	return f.orders[id], f.err
}

func (f *fakeCatalog) ListServiceOrdersByClient(_ context.Context, clientID string) ([]entities.ServiceOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.ServiceOrder
	for _, id := range []string{"so-1", "so-2", "so-3"} {
		if o, ok := f.orders[id]; ok && o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entities.QuoteEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event entities.QuoteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []entities.QuoteEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entities.QuoteEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type quoteFixture struct {
	repo    *repository.QuoteMemoryRepository
	catalog *fakeCatalog
	events  *recordingPublisher
	items   *LineItemUseCase
	quotes  *QuoteUseCase
}

func newQuoteFixture(t *testing.T, policy StatusPolicy) *quoteFixture {
	t.Helper()
	f := &quoteFixture{
		repo:    repository.NewQuoteMemoryRepository(),
		catalog: newFakeCatalog(),
		events:  &recordingPublisher{},
	}
	f.items = NewLineItemUseCase(f.repo, f.catalog, nil)
	f.quotes = NewQuoteUseCase(f.repo, f.catalog, f.items, policy, f.events, nil)
	f.quotes.nowFunc = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

func freeText(desc, qty, price string) LineItemInput {
	return LineItemInput{Kind: entities.LineItemKindFreeText, Description: desc, Quantity: dec(qty), UnitPrice: dec(price)}
}

func discount(desc, price string) LineItemInput {
	return LineItemInput{Kind: entities.LineItemKindDiscount, Description: desc, Quantity: dec("1"), UnitPrice: dec(price)}
}
