package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase/interfaces"
	"fieldservice_quotes/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxDescriptionLength = 500

// LineItemInput is the payload of a new line item. Quantity is taken as a
// decimal so that a fractional quantity is reported instead of truncated.
type LineItemInput struct {
	Kind          entities.LineItemKind
	PartID        string
	ServiceTypeID string
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
}

// LineItemPatch changes some fields of an item. When Kind is set the payload
// is rebuilt from the patch alone, so the old payload never leaks into the
// new kind.
type LineItemPatch struct {
	Kind          *entities.LineItemKind
	PartID        *string
	ServiceTypeID *string
	Description   *string
	Quantity      *decimal.Decimal
	UnitPrice     *decimal.Decimal
}

// ILineItemUseCase manages the items of an existing quote.
type ILineItemUseCase interface {
	AddItem(ctx context.Context, quoteID string, in LineItemInput) (entities.LineItem, error)
	UpdateItem(ctx context.Context, quoteID, itemID string, patch LineItemPatch) (entities.LineItem, error)
	DeleteItem(ctx context.Context, quoteID, itemID string) error
}

type LineItemUseCase struct {
	repo    interfaces.IQuoteRepository
	catalog interfaces.ICatalog
	log     *logger.Logger

	// mu serializes every quote mutation in this process; QuoteUseCase shares it.
	mu *sync.Mutex
}

var _ ILineItemUseCase = (*LineItemUseCase)(nil)

func NewLineItemUseCase(repo interfaces.IQuoteRepository, catalog interfaces.ICatalog, log *logger.Logger) *LineItemUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LineItemUseCase{repo: repo, catalog: catalog, log: log, mu: &sync.Mutex{}}
}

func (u *LineItemUseCase) AddItem(ctx context.Context, quoteID string, in LineItemInput) (entities.LineItem, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	q, err := u.loadQuote(ctx, quoteID)
	if err != nil {
		return entities.LineItem{}, err
	}

	item, err := u.buildItem(ctx, in)
	if err != nil {
		return entities.LineItem{}, err
	}
	item.ID = uuid.NewString()
	item.QuoteID = q.ID
	item.Position = q.NextPosition()

	found, err := u.repo.PutItem(ctx, item, false)
	if err != nil {
		return entities.LineItem{}, collaborator("put line item", err)
	}
	if !found {
		// deleted by another process between load and write
		return entities.LineItem{}, notFound("quote", q.ID)
	}
	u.log.Info(u.log.WithFields(ctx, map[string]any{"quote_id": q.ID, "item_id": item.ID, "kind": item.Kind}), "[quote][items] item added")
	return item, nil
}

func (u *LineItemUseCase) UpdateItem(ctx context.Context, quoteID, itemID string, patch LineItemPatch) (entities.LineItem, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	q, err := u.loadQuote(ctx, quoteID)
	if err != nil {
		return entities.LineItem{}, err
	}
	itemID = strings.TrimSpace(itemID)
	idx := q.FindItem(itemID)
	if itemID == "" || idx < 0 {
		return entities.LineItem{}, notFound("line item", itemID)
	}
	current := q.LineItems[idx]

	item, err := u.buildItem(ctx, mergeItemPatch(current, patch))
	if err != nil {
		return entities.LineItem{}, err
	}
	item.ID = current.ID
	item.QuoteID = current.QuoteID
	item.Position = current.Position

	found, err := u.repo.PutItem(ctx, item, true)
	if err != nil {
		return entities.LineItem{}, collaborator("put line item", err)
	}
	if !found {
		return entities.LineItem{}, notFound("line item", itemID)
	}
	u.log.Info(u.log.WithFields(ctx, map[string]any{"quote_id": q.ID, "item_id": item.ID}), "[quote][items] item updated")
	return item, nil
}

func (u *LineItemUseCase) DeleteItem(ctx context.Context, quoteID, itemID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	q, err := u.loadQuote(ctx, quoteID)
	if err != nil {
		return err
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" || q.FindItem(itemID) < 0 {
		return notFound("line item", itemID)
	}

	found, err := u.repo.DeleteItem(ctx, q.ID, itemID)
	if err != nil {
		return collaborator("delete line item", err)
	}
	if !found {
		return notFound("line item", itemID)
	}
	u.log.Info(u.log.WithFields(ctx, map[string]any{"quote_id": q.ID, "item_id": itemID}), "[quote][items] item deleted")
	return nil
}

func (u *LineItemUseCase) loadQuote(ctx context.Context, quoteID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, notFound("quote", quoteID)
	}
	q, err := u.repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, collaborator("load quote", err)
	}
	if q.ID == "" {
		return entities.Quote{}, notFound("quote", quoteID)
	}
	return q, nil
}

// buildItem validates in and returns the item without identity fields.
func (u *LineItemUseCase) buildItem(ctx context.Context, in LineItemInput) (entities.LineItem, error) {
	item, err := validateItemInput(in)
	if err != nil {
		return entities.LineItem{}, err
	}
	if err := u.checkReferences(ctx, item); err != nil {
		return entities.LineItem{}, err
	}
	return item, nil
}

func validateItemInput(in LineItemInput) (entities.LineItem, error) {
	if !in.Kind.IsValid() {
		return entities.LineItem{}, invalid("kind", "must be one of PART, SERVICE, FREE_TEXT, DISCOUNT")
	}
	item := entities.LineItem{
		Kind:          in.Kind,
		PartID:        strings.TrimSpace(in.PartID),
		ServiceTypeID: strings.TrimSpace(in.ServiceTypeID),
		Description:   strings.TrimSpace(in.Description),
		UnitPrice:     in.UnitPrice,
	}

	set := 0
	for _, v := range []string{item.PartID, item.ServiceTypeID, item.Description} {
		if v != "" {
			set++
		}
	}
	var required string
	switch in.Kind {
	case entities.LineItemKindPart:
		required = item.PartID
	case entities.LineItemKindService:
		required = item.ServiceTypeID
	case entities.LineItemKindFreeText, entities.LineItemKindDiscount:
		required = item.Description
	}
	if required == "" || set != 1 {
		return entities.LineItem{}, invalid("payload", "kind "+string(in.Kind)+" requires exactly its own payload field")
	}
	if utf8.RuneCountInString(item.Description) > MaxDescriptionLength {
		return entities.LineItem{}, invalid("description", fmt.Sprintf("must be at most %d characters", MaxDescriptionLength))
	}

	if !in.Quantity.IsInteger() {
		return entities.LineItem{}, invalid("quantity", "must be an integer")
	}
	if in.Quantity.LessThan(decimal.NewFromInt(1)) {
		return entities.LineItem{}, invalid("quantity", "must be at least 1")
	}
	if !in.Quantity.BigInt().IsInt64() {
		return entities.LineItem{}, invalid("quantity", "out of range")
	}
	item.Quantity = in.Quantity.IntPart()

	// Whole cents keep every rendered subtotal exact, so they add up to the total.
	if !in.UnitPrice.Equal(in.UnitPrice.Round(2)) {
		return entities.LineItem{}, invalid("unit_price", "must have at most 2 decimal places")
	}
	if in.Kind == entities.LineItemKindDiscount && in.UnitPrice.IsNegative() {
		return entities.LineItem{}, invalid("unit_price", "discount magnitude must not be negative")
	}
	return item, nil
}

func (u *LineItemUseCase) checkReferences(ctx context.Context, item entities.LineItem) error {
	switch item.Kind {
	case entities.LineItemKindPart:
		p, err := u.catalog.GetPart(ctx, item.PartID)
		if err != nil {
			return collaborator("load part", err)
		}
		if p.ID == "" {
			return &ReferenceIntegrityError{Field: "part_id", ID: item.PartID, Reason: "part does not exist"}
		}
	case entities.LineItemKindService:
		st, err := u.catalog.GetServiceType(ctx, item.ServiceTypeID)
		if err != nil {
			return collaborator("load service type", err)
		}
		if st.ID == "" {
			return &ReferenceIntegrityError{Field: "service_type_id", ID: item.ServiceTypeID, Reason: "service type does not exist"}
		}
	}
	return nil
}

func mergeItemPatch(current entities.LineItem, patch LineItemPatch) LineItemInput {
	in := LineItemInput{
		Kind:          current.Kind,
		PartID:        current.PartID,
		ServiceTypeID: current.ServiceTypeID,
		Description:   current.Description,
		Quantity:      decimal.NewFromInt(current.Quantity),
		UnitPrice:     current.UnitPrice,
	}
	if patch.Kind != nil && *patch.Kind != current.Kind {
		in.Kind = *patch.Kind
		in.PartID, in.ServiceTypeID, in.Description = "", "", ""
	}
	if patch.PartID != nil {
		in.PartID = *patch.PartID
	}
	if patch.ServiceTypeID != nil {
		in.ServiceTypeID = *patch.ServiceTypeID
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.Quantity != nil {
		in.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		in.UnitPrice = *patch.UnitPrice
	}
	return in
}
