package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/domain/orderfilter"
	"fieldservice_quotes/internal/domain/pricing"
	"fieldservice_quotes/internal/usecase/interfaces"
	"fieldservice_quotes/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxItemsPerCreate bounds CreateWithItems so header and items fit in one
// storage transaction.
const MaxItemsPerCreate = 99

const MaxNotesLength = 2000

type QuoteInput struct {
	ClientID           string
	OriginatingOrderID *string
	ValidUntil         *time.Time
	Notes              string
}

// QuotePatch updates header fields. Nil means "leave as is"; an empty
// OriginatingOrderID clears it, as does ClearValidUntil for ValidUntil.
type QuotePatch struct {
	ClientID           *string
	OriginatingOrderID *string
	Status             *entities.QuoteStatus
	ValidUntil         *time.Time
	ClearValidUntil    bool
	Notes              *string
}

// QuoteView is a quote as read: items plus a total computed at read time.
type QuoteView struct {
	Quote      entities.Quote
	Total      decimal.Decimal
	Incomplete bool
}

func NewQuoteView(q entities.Quote) QuoteView {
	return QuoteView{Quote: q, Total: pricing.QuoteTotal(q), Incomplete: q.IsIncomplete()}
}

// IQuoteUseCase exposes the quote aggregate operations.
type IQuoteUseCase interface {
	Create(ctx context.Context, in QuoteInput) (QuoteView, error)
	CreateWithItems(ctx context.Context, in QuoteInput, items []LineItemInput) (QuoteView, error)
	Update(ctx context.Context, id string, patch QuotePatch) (QuoteView, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (QuoteView, error)
	List(ctx context.Context, filter interfaces.QuoteFilter) ([]QuoteView, error)
	Render(ctx context.Context, id string) (entities.RenderedQuote, error)
	CandidateOrders(ctx context.Context, clientID string) ([]entities.ServiceOrder, error)
}

type QuoteUseCase struct {
	repo    interfaces.IQuoteRepository
	catalog interfaces.ICatalog
	items   *LineItemUseCase
	policy  StatusPolicy
	events  interfaces.IQuoteEventPublisher
	log     *logger.Logger
	nowFunc func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

// NewQuoteUseCase wires the aggregate service. It shares the item use case's
// writer lock, so quote and item mutations never interleave. events may be nil.
func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	catalog interfaces.ICatalog,
	items *LineItemUseCase,
	policy StatusPolicy,
	events interfaces.IQuoteEventPublisher,
	log *logger.Logger,
) *QuoteUseCase {
	if policy == nil {
		policy = PermissiveStatusPolicy{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteUseCase{
		repo:    repo,
		catalog: catalog,
		items:   items,
		policy:  policy,
		events:  events,
		log:     log,
		nowFunc: time.Now,
	}
}

func (u *QuoteUseCase) Create(ctx context.Context, in QuoteInput) (QuoteView, error) {
	return u.CreateWithItems(ctx, in, nil)
}

// CreateWithItems validates the header and every item before writing
// anything, then persists them in one transaction.
func (u *QuoteUseCase) CreateWithItems(ctx context.Context, in QuoteInput, inputs []LineItemInput) (QuoteView, error) {
	u.items.mu.Lock()
	defer u.items.mu.Unlock()

	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return QuoteView{}, invalid("client_id", "is required")
	}
	if len(inputs) > MaxItemsPerCreate {
		return QuoteView{}, invalidCause("items", ErrTooManyItems)
	}
	if err := checkNotes(in.Notes); err != nil {
		return QuoteView{}, err
	}
	if err := u.ensureClient(ctx, clientID); err != nil {
		return QuoteView{}, err
	}

	orderID := normalizeOptional(in.OriginatingOrderID)
	if orderID != nil {
		if err := u.ensureOrderBelongs(ctx, *orderID, clientID); err != nil {
			return QuoteView{}, err
		}
	}

	now := u.nowFunc().UTC()
	q := entities.Quote{
		ID:                 uuid.NewString(),
		ClientID:           clientID,
		OriginatingOrderID: orderID,
		Status:             entities.QuoteStatusPending,
		ValidUntil:         in.ValidUntil,
		Notes:              strings.TrimSpace(in.Notes),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	for i, input := range inputs {
		item, err := u.items.buildItem(ctx, input)
		if err != nil {
			return QuoteView{}, atItem(i, err)
		}
		item.ID = uuid.NewString()
		item.QuoteID = q.ID
		item.Position = i
		q.LineItems = append(q.LineItems, item)
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		return QuoteView{}, collaborator("create quote", err)
	}

	ctx = u.log.WithQuoteID(ctx, created.ID)
	u.log.Info(u.log.WithField(ctx, "items", len(created.LineItems)), "[quote][usecase] quote created")
	u.publish(ctx, entities.QuoteEvent{Type: entities.QuoteEventCreated, QuoteID: created.ID, ClientID: created.ClientID, Status: created.Status, OccurredAt: now})
	return NewQuoteView(created), nil
}

func (u *QuoteUseCase) Update(ctx context.Context, id string, patch QuotePatch) (QuoteView, error) {
	u.items.mu.Lock()
	defer u.items.mu.Unlock()

	current, err := u.items.loadQuote(ctx, id)
	if err != nil {
		return QuoteView{}, err
	}
	next := current

	if patch.ClientID != nil {
		clientID := strings.TrimSpace(*patch.ClientID)
		if clientID == "" {
			return QuoteView{}, invalid("client_id", "is required")
		}
		if clientID != current.ClientID {
			if err := u.ensureClient(ctx, clientID); err != nil {
				return QuoteView{}, err
			}
			next.ClientID = clientID
		}
	}

	switch {
	case patch.OriginatingOrderID != nil:
		next.OriginatingOrderID = normalizeOptional(patch.OriginatingOrderID)
		if next.OriginatingOrderID != nil {
			if err := u.ensureOrderBelongs(ctx, *next.OriginatingOrderID, next.ClientID); err != nil {
				return QuoteView{}, err
			}
		}
	case next.ClientID != current.ClientID && current.OriginatingOrderID != nil:
		candidates, err := u.candidateOrders(ctx, next.ClientID)
		if err != nil {
			return QuoteView{}, err
		}
		next.OriginatingOrderID = orderfilter.Reconcile(current.OriginatingOrderID, candidates)
	}

	if patch.Status != nil {
		status := entities.QuoteStatus(strings.ToUpper(strings.TrimSpace(string(*patch.Status))))
		if !status.IsValid() {
			return QuoteView{}, invalid("status", "must be one of PENDING, APPROVED, REJECTED, CANCELED")
		}
		if !u.policy.CanTransition(current.Status, status) {
			return QuoteView{}, invalidCause("status", ErrStatusTransitionNotAllowed)
		}
		next.Status = status
	}

	if patch.ClearValidUntil {
		next.ValidUntil = nil
	} else if patch.ValidUntil != nil {
		next.ValidUntil = patch.ValidUntil
	}
	if patch.Notes != nil {
		if err := checkNotes(*patch.Notes); err != nil {
			return QuoteView{}, err
		}
		next.Notes = strings.TrimSpace(*patch.Notes)
	}

	next.UpdatedAt = u.nowFunc().UTC()
	updated, err := u.repo.UpdateHeader(ctx, next.Header())
	if err != nil {
		return QuoteView{}, collaborator("update quote", err)
	}
	if updated.ID == "" {
		return QuoteView{}, notFound("quote", current.ID)
	}
	updated.LineItems = current.LineItems

	ctx = u.log.WithQuoteID(ctx, updated.ID)
	u.log.Info(ctx, "[quote][usecase] quote updated")
	if updated.Status != current.Status {
		u.publish(ctx, entities.QuoteEvent{
			Type:           entities.QuoteEventStatusChanged,
			QuoteID:        updated.ID,
			ClientID:       updated.ClientID,
			Status:         updated.Status,
			PreviousStatus: current.Status,
			OccurredAt:     updated.UpdatedAt,
		})
	}
	return NewQuoteView(updated), nil
}

func checkNotes(notes string) error {
	if utf8.RuneCountInString(strings.TrimSpace(notes)) > MaxNotesLength {
		return invalid("notes", fmt.Sprintf("must be at most %d characters", MaxNotesLength))
	}
	return nil
}

func (u *QuoteUseCase) Delete(ctx context.Context, id string) error {
	u.items.mu.Lock()
	defer u.items.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return notFound("quote", id)
	}
	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return collaborator("load quote", err)
	}
	if current.ID == "" {
		return notFound("quote", id)
	}

	found, err := u.repo.Delete(ctx, id)
	if err != nil {
		return collaborator("delete quote", err)
	}
	if !found {
		return notFound("quote", id)
	}

	ctx = u.log.WithQuoteID(ctx, id)
	u.log.Info(ctx, "[quote][usecase] quote deleted")
	u.publish(ctx, entities.QuoteEvent{Type: entities.QuoteEventDeleted, QuoteID: id, ClientID: current.ClientID, OccurredAt: u.nowFunc().UTC()})
	return nil
}

func (u *QuoteUseCase) Get(ctx context.Context, id string) (QuoteView, error) {
	q, err := u.items.loadQuote(ctx, id)
	if err != nil {
		return QuoteView{}, err
	}
	return NewQuoteView(q), nil
}

func (u *QuoteUseCase) List(ctx context.Context, filter interfaces.QuoteFilter) ([]QuoteView, error) {
	filter.ClientID = strings.TrimSpace(filter.ClientID)
	if filter.Status != "" {
		filter.Status = entities.QuoteStatus(strings.ToUpper(string(filter.Status)))
		if !filter.Status.IsValid() {
			return nil, invalid("status", "must be one of PENDING, APPROVED, REJECTED, CANCELED")
		}
	}

	quotes, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, collaborator("list quotes", err)
	}
	views := make([]QuoteView, 0, len(quotes))
	for _, q := range quotes {
		if filter.Matches(q) {
			views = append(views, NewQuoteView(q))
		}
	}
	return views, nil
}

// Render resolves display labels for the quote so an export collaborator can
// print it without touching the catalogs.
func (u *QuoteUseCase) Render(ctx context.Context, id string) (entities.RenderedQuote, error) {
	q, err := u.items.loadQuote(ctx, id)
	if err != nil {
		return entities.RenderedQuote{}, err
	}

	client, err := u.catalog.GetClient(ctx, q.ClientID)
	if err != nil {
		return entities.RenderedQuote{}, collaborator("load client", err)
	}
	out := entities.RenderedQuote{
		Quote:      q,
		ClientName: client.Name,
		Items:      make([]entities.RenderedLineItem, 0, len(q.LineItems)),
		Total:      pricing.QuoteTotal(q),
	}

	if q.OriginatingOrderID != nil {
		order, err := u.catalog.GetServiceOrder(ctx, *q.OriginatingOrderID)
		if err != nil {
			return entities.RenderedQuote{}, collaborator("load service order", err)
		}
		out.OrderLabel = order.Identifier
	}

	for _, it := range q.LineItems {
		label, err := u.itemLabel(ctx, it)
		if err != nil {
			return entities.RenderedQuote{}, err
		}
		out.Items = append(out.Items, entities.RenderedLineItem{Item: it, Label: label, Subtotal: pricing.Subtotal(it)})
	}
	return out, nil
}

func (u *QuoteUseCase) CandidateOrders(ctx context.Context, clientID string) ([]entities.ServiceOrder, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, invalid("client_id", "is required")
	}
	return u.candidateOrders(ctx, clientID)
}

func (u *QuoteUseCase) candidateOrders(ctx context.Context, clientID string) ([]entities.ServiceOrder, error) {
	orders, err := u.catalog.ListServiceOrdersByClient(ctx, clientID)
	if err != nil {
		return nil, collaborator("list service orders", err)
	}
	return orderfilter.CandidateOrders(orders, clientID), nil
}

func (u *QuoteUseCase) itemLabel(ctx context.Context, it entities.LineItem) (string, error) {
	switch it.Kind {
	case entities.LineItemKindPart:
		p, err := u.catalog.GetPart(ctx, it.PartID)
		if err != nil {
			return "", collaborator("load part", err)
		}
		if p.ID == "" {
			return it.PartID, nil
		}
		return p.Label(), nil
	case entities.LineItemKindService:
		st, err := u.catalog.GetServiceType(ctx, it.ServiceTypeID)
		if err != nil {
			return "", collaborator("load service type", err)
		}
		if st.ID == "" {
			return it.ServiceTypeID, nil
		}
		return st.Description, nil
	}
	return it.Description, nil
}

func (u *QuoteUseCase) ensureClient(ctx context.Context, clientID string) error {
	c, err := u.catalog.GetClient(ctx, clientID)
	if err != nil {
		return collaborator("load client", err)
	}
	if c.ID == "" {
		return &ReferenceIntegrityError{Field: "client_id", ID: clientID, Reason: "client does not exist"}
	}
	return nil
}

func (u *QuoteUseCase) ensureOrderBelongs(ctx context.Context, orderID, clientID string) error {
	order, err := u.catalog.GetServiceOrder(ctx, orderID)
	if err != nil {
		return collaborator("load service order", err)
	}
	if order.ID == "" {
		return &ReferenceIntegrityError{Field: "originating_order_id", ID: orderID, Reason: "service order does not exist"}
	}
	if order.ClientID != clientID {
		return &ReferenceIntegrityError{Field: "originating_order_id", ID: orderID, Reason: "service order belongs to another client"}
	}
	return nil
}

// publish notifies collaborators after a committed mutation. A failure here
// cannot undo the mutation, so it is logged and not returned.
func (u *QuoteUseCase) publish(ctx context.Context, event entities.QuoteEvent) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, event); err != nil {
		u.log.Warn(u.log.WithField(ctx, "event", event.Type), "[quote][usecase] event publish failed", err)
	}
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
