package usecase

import (
	"context"
	"errors"
	"testing"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase/interfaces"
	mock_interfaces "fieldservice_quotes/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestQuoteUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("client required", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		_, err := f.quotes.Create(ctx, QuoteInput{ClientID: "  "})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		_, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-404"})
		if !errors.Is(err, ErrReferenceIntegrity) {
			t.Fatalf("expected ErrReferenceIntegrity, got %v", err)
		}
	})

	t.Run("order of another client", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		_, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1", OriginatingOrderID: strPtr("so-3")})
		var rie *ReferenceIntegrityError
		if !errors.As(err, &rie) || rie.Field != "originating_order_id" {
			t.Fatalf("expected ReferenceIntegrityError on originating_order_id, got %v", err)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		_, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1", OriginatingOrderID: strPtr("so-404")})
		if !errors.Is(err, ErrReferenceIntegrity) {
			t.Fatalf("expected ErrReferenceIntegrity, got %v", err)
		}
	})

	t.Run("header only is pending and incomplete", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		view, err := f.quotes.Create(ctx, QuoteInput{ClientID: " c-1 ", OriginatingOrderID: strPtr("so-1"), Notes: " rear axle "})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		q := view.Quote
		if q.ID == "" || q.ClientID != "c-1" || q.Status != entities.QuoteStatusPending || q.Notes != "rear axle" {
			t.Fatalf("unexpected quote: %+v", q)
		}
		if q.OriginatingOrderID == nil || *q.OriginatingOrderID != "so-1" {
			t.Fatalf("expected originating order so-1, got %v", q.OriginatingOrderID)
		}
		if !view.Incomplete || !view.Total.IsZero() || len(q.LineItems) != 0 {
			t.Fatalf("expected empty incomplete quote, got %+v", view)
		}
		if got := f.events.types(); len(got) != 1 || got[0] != entities.QuoteEventCreated {
			t.Fatalf("expected one created event, got %v", got)
		}

		incomplete, err := f.quotes.List(ctx, interfaces.QuoteFilter{OnlyIncomplete: true})
		if err != nil || len(incomplete) != 1 || incomplete[0].Quote.ID != q.ID {
			t.Fatalf("expected quote to be listed as incomplete, got %v %v", incomplete, err)
		}
	})

	t.Run("blank order is treated as none", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		view, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1", OriginatingOrderID: strPtr(" ")})
		if err != nil || view.Quote.OriginatingOrderID != nil {
			t.Fatalf("expected no originating order, got %v %v", view.Quote.OriginatingOrderID, err)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		catalog := newFakeCatalog()
		items := NewLineItemUseCase(repo, catalog, nil)
		uc := NewQuoteUseCase(repo, catalog, items, nil, nil, nil)

		boom := errors.New("dynamo down")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, boom)

		_, err := uc.Create(ctx, QuoteInput{ClientID: "c-1"})
		if !errors.Is(err, ErrCollaborator) || !errors.Is(err, boom) {
			t.Fatalf("expected collaborator error wrapping boom, got %v", err)
		}
	})

	t.Run("catalog failure", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		f.catalog.err = errors.New("catalog timeout")
		_, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
		if !errors.Is(err, ErrCollaborator) {
			t.Fatalf("expected ErrCollaborator, got %v", err)
		}
	})
}

func TestQuoteUseCase_CreateWithItems(t *testing.T) {
	ctx := context.Background()

	t.Run("persists header and items together", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		view, err := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, []LineItemInput{
			{Kind: entities.LineItemKindPart, PartID: "p-1", Quantity: dec("2"), UnitPrice: dec("50.00")},
			{Kind: entities.LineItemKindService, ServiceTypeID: "st-1", Quantity: dec("1"), UnitPrice: dec("80")},
			discount("loyalty", "30"),
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if view.Incomplete || len(view.Quote.LineItems) != 3 {
			t.Fatalf("expected 3 items, got %+v", view.Quote.LineItems)
		}
		if !view.Total.Equal(dec("150")) {
			t.Fatalf("expected total 150, got %s", view.Total)
		}
		for i, it := range view.Quote.LineItems {
			if it.Position != i || it.QuoteID != view.Quote.ID || it.ID == "" {
				t.Fatalf("unexpected item %d: %+v", i, it)
			}
		}

		stored, err := f.quotes.Get(ctx, view.Quote.ID)
		if err != nil || len(stored.Quote.LineItems) != 3 || !stored.Total.Equal(view.Total) {
			t.Fatalf("expected stored quote to match, got %+v %v", stored, err)
		}
	})

	t.Run("one invalid item writes nothing", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		_, err := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, []LineItemInput{
			freeText("labour", "1", "10"),
			{Kind: entities.LineItemKindPart, PartID: "p-404", Quantity: dec("1"), UnitPrice: dec("1")},
		})
		if !errors.Is(err, ErrReferenceIntegrity) {
			t.Fatalf("expected ErrReferenceIntegrity, got %v", err)
		}
		all, _ := f.quotes.List(ctx, interfaces.QuoteFilter{})
		if len(all) != 0 {
			t.Fatalf("expected no quotes, got %d", len(all))
		}
		if len(f.events.types()) != 0 {
			t.Fatalf("no event expected on failure")
		}
	})

	t.Run("invalid item is reported by position", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		_, err := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, []LineItemInput{
			freeText("labour", "1", "10"),
			{Kind: "GIFT", Description: "x", Quantity: dec("1")},
		})
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "items[1].kind" {
			t.Fatalf("expected validation error on items[1].kind, got %v", err)
		}
	})

	t.Run("too many items", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		inputs := make([]LineItemInput, MaxItemsPerCreate+1)
		for i := range inputs {
			inputs[i] = freeText("x", "1", "1")
		}
		_, err := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, inputs)
		if !errors.Is(err, ErrTooManyItems) || !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrTooManyItems validation error, got %v", err)
		}
	})
}

func TestQuoteUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		_, err := f.quotes.Update(ctx, "nope", QuotePatch{Notes: strPtr("x")})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("client change clears order of previous client", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1", OriginatingOrderID: strPtr("so-1")})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ClientID: strPtr("c-2")})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if view.Quote.ClientID != "c-2" || view.Quote.OriginatingOrderID != nil {
			t.Fatalf("expected client c-2 without order, got %+v", view.Quote)
		}
		got, _ := f.quotes.Get(ctx, created.Quote.ID)
		if got.Quote.OriginatingOrderID != nil {
			t.Fatalf("expected cleared order to be persisted")
		}
	})

	t.Run("client change keeps order still a candidate", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1", OriginatingOrderID: strPtr("so-1")})
		// so-1 moves to c-2 in the directory
		f.catalog.orders["so-1"] = entities.ServiceOrder{ID: "so-1", ClientID: "c-2", Identifier: "OS-0001"}

		view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ClientID: strPtr("c-2")})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if view.Quote.OriginatingOrderID == nil || *view.Quote.OriginatingOrderID != "so-1" {
			t.Fatalf("expected so-1 to be kept, got %v", view.Quote.OriginatingOrderID)
		}
	})

	t.Run("client change with items is allowed", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, []LineItemInput{freeText("a", "1", "5")})
		view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ClientID: strPtr("c-2")})
		if err != nil || view.Quote.ClientID != "c-2" || len(view.Quote.LineItems) != 1 {
			t.Fatalf("expected client change with items kept, got %+v %v", view.Quote, err)
		}
	})

	t.Run("unknown new client", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
		_, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ClientID: strPtr("c-404")})
		if !errors.Is(err, ErrReferenceIntegrity) {
			t.Fatalf("expected ErrReferenceIntegrity, got %v", err)
		}
	})

	t.Run("explicit order must belong to resulting client", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})

		_, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{OriginatingOrderID: strPtr("so-3")})
		if !errors.Is(err, ErrReferenceIntegrity) {
			t.Fatalf("expected ErrReferenceIntegrity, got %v", err)
		}

		view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ClientID: strPtr("c-2"), OriginatingOrderID: strPtr("so-3")})
		if err != nil || view.Quote.OriginatingOrderID == nil || *view.Quote.OriginatingOrderID != "so-3" {
			t.Fatalf("expected so-3 with client c-2, got %+v %v", view.Quote, err)
		}
	})

	t.Run("failed update changes nothing", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1", Notes: "before"})
		_, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{Notes: strPtr("after"), OriginatingOrderID: strPtr("so-3")})
		if err == nil {
			t.Fatalf("expected error")
		}
		got, _ := f.quotes.Get(ctx, created.Quote.ID)
		if got.Quote.Notes != "before" {
			t.Fatalf("expected notes untouched, got %q", got.Quote.Notes)
		}
	})

	t.Run("empty order clears it", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1", OriginatingOrderID: strPtr("so-2")})
		view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{OriginatingOrderID: strPtr("")})
		if err != nil || view.Quote.OriginatingOrderID != nil {
			t.Fatalf("expected order cleared, got %v %v", view.Quote.OriginatingOrderID, err)
		}
	})

	t.Run("permissive policy allows any status", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
		for _, s := range []entities.QuoteStatus{"approved", entities.QuoteStatusPending, entities.QuoteStatusCanceled, entities.QuoteStatusApproved} {
			status := s
			view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{Status: &status})
			if err != nil {
				t.Fatalf("status %s: %v", s, err)
			}
			if string(view.Quote.Status) == "" {
				t.Fatalf("empty status")
			}
		}
		types := f.events.types()
		if len(types) != 5 || types[4] != entities.QuoteEventStatusChanged {
			t.Fatalf("expected created + 4 status events, got %v", types)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
		status := entities.QuoteStatus("ARCHIVED")
		_, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{Status: &status})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("terminal policy", func(t *testing.T) {
		f := newQuoteFixture(t, TerminalStatusPolicy{})
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
		approved := entities.QuoteStatusApproved
		if _, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{Status: &approved}); err != nil {
			t.Fatalf("pending -> approved: %v", err)
		}
		pending := entities.QuoteStatusPending
		_, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{Status: &pending})
		if !errors.Is(err, ErrStatusTransitionNotAllowed) {
			t.Fatalf("expected ErrStatusTransitionNotAllowed, got %v", err)
		}
	})

	t.Run("valid until set and cleared", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
		when := f.quotes.nowFunc().AddDate(0, 0, 15)
		view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ValidUntil: &when})
		if err != nil || view.Quote.ValidUntil == nil || !view.Quote.ValidUntil.Equal(when) {
			t.Fatalf("expected valid until set, got %v %v", view.Quote.ValidUntil, err)
		}
		view, err = f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ClearValidUntil: true})
		if err != nil || view.Quote.ValidUntil != nil {
			t.Fatalf("expected valid until cleared, got %v %v", view.Quote.ValidUntil, err)
		}
	})

	t.Run("publish failure does not fail update", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
		f.events.err = errors.New("queue unavailable")
		approved := entities.QuoteStatusApproved
		view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{Status: &approved})
		if err != nil || view.Quote.Status != entities.QuoteStatusApproved {
			t.Fatalf("expected committed update, got %v %v", view.Quote.Status, err)
		}
	})
}

func TestQuoteUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades to items", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		created, _ := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, []LineItemInput{freeText("a", "1", "5"), freeText("b", "2", "5")})
		itemID := created.Quote.LineItems[0].ID

		if err := f.quotes.Delete(ctx, created.Quote.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := f.quotes.Get(ctx, created.Quote.ID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := f.items.DeleteItem(ctx, created.Quote.ID, itemID); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected item unreachable, got %v", err)
		}
		if _, err := f.items.UpdateItem(ctx, created.Quote.ID, itemID, LineItemPatch{Description: strPtr("c")}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected item unreachable, got %v", err)
		}
		types := f.events.types()
		if types[len(types)-1] != entities.QuoteEventDeleted {
			t.Fatalf("expected deleted event, got %v", types)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newQuoteFixture(t, nil)
		if err := f.quotes.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		catalog := newFakeCatalog()
		uc := NewQuoteUseCase(repo, catalog, NewLineItemUseCase(repo, catalog, nil), nil, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", ClientID: "c-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), "q-1").Return(false, errors.New("throttled"))

		if err := uc.Delete(ctx, "q-1"); !errors.Is(err, ErrCollaborator) {
			t.Fatalf("expected ErrCollaborator, got %v", err)
		}
	})
}

func TestQuoteUseCase_ListFilters(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t, nil)
	_, _ = f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
	_, _ = f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-2"}, []LineItemInput{freeText("a", "1", "5")})

	byClient, err := f.quotes.List(ctx, interfaces.QuoteFilter{ClientID: "c-2"})
	if err != nil || len(byClient) != 1 || !byClient[0].Total.Equal(dec("5")) {
		t.Fatalf("unexpected list by client: %+v %v", byClient, err)
	}

	byStatus, err := f.quotes.List(ctx, interfaces.QuoteFilter{Status: "pending"})
	if err != nil || len(byStatus) != 2 {
		t.Fatalf("expected 2 pending quotes, got %d %v", len(byStatus), err)
	}

	if _, err := f.quotes.List(ctx, interfaces.QuoteFilter{Status: "DRAFT"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestQuoteUseCase_Render(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t, nil)
	created, err := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1", OriginatingOrderID: strPtr("so-2")}, []LineItemInput{
		{Kind: entities.LineItemKindPart, PartID: "p-1", Quantity: dec("2"), UnitPrice: dec("50")},
		{Kind: entities.LineItemKindService, ServiceTypeID: "st-1", Quantity: dec("1"), UnitPrice: dec("30")},
		freeText("Towing", "1", "-5"),
		discount("Fleet discount", "25"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rendered, err := f.quotes.Render(ctx, created.Quote.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if rendered.ClientName != "Oficina Central" || rendered.OrderLabel != "OS-0002" {
		t.Fatalf("unexpected header labels: %q %q", rendered.ClientName, rendered.OrderLabel)
	}
	wantLabels := []string{"BP-01 - Brake pad", "Brake service", "Towing", "Fleet discount"}
	wantSubtotals := []string{"100", "30", "-5", "-25"}
	if len(rendered.Items) != len(wantLabels) {
		t.Fatalf("expected %d items, got %d", len(wantLabels), len(rendered.Items))
	}
	for i, it := range rendered.Items {
		if it.Label != wantLabels[i] || !it.Subtotal.Equal(dec(wantSubtotals[i])) {
			t.Fatalf("item %d: got %q %s", i, it.Label, it.Subtotal)
		}
	}
	if !rendered.Total.Equal(dec("100")) {
		t.Fatalf("expected total 100, got %s", rendered.Total)
	}

	t.Run("part removed from catalog falls back to id", func(t *testing.T) {
		delete(f.catalog.parts, "p-1")
		rendered, err := f.quotes.Render(ctx, created.Quote.ID)
		if err != nil || rendered.Items[0].Label != "p-1" {
			t.Fatalf("expected id fallback, got %q %v", rendered.Items[0].Label, err)
		}
	})
}

func TestQuoteUseCase_RenderedCentsAddUp(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t, nil)
	created, err := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, []LineItemInput{
		freeText("Sealant", "3", "0.01"),
		freeText("Gasket", "7", "12.34"),
		discount("Promo", "0.99"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.quotes.CreateWithItems(ctx, QuoteInput{ClientID: "c-1"}, []LineItemInput{freeText("Fraction", "1", "0.005")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected sub-cent price to be rejected, got %v", err)
	}

	rendered, err := f.quotes.Render(ctx, created.Quote.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	sum := decimal.Zero
	for _, it := range rendered.Items {
		sum = sum.Add(decimal.RequireFromString(it.Subtotal.StringFixed(2)))
	}
	if sum.StringFixed(2) != rendered.Total.StringFixed(2) || rendered.Total.StringFixed(2) != "85.42" {
		t.Fatalf("rendered subtotals sum to %s, total %s", sum.StringFixed(2), rendered.Total.StringFixed(2))
	}
}

func TestQuoteUseCase_CandidateOrders(t *testing.T) {
	f := newQuoteFixture(t, nil)
	orders, err := f.quotes.CandidateOrders(context.Background(), "c-1")
	if err != nil || len(orders) != 2 {
		t.Fatalf("expected 2 orders for c-1, got %v %v", orders, err)
	}
	for _, o := range orders {
		if o.ClientID != "c-1" {
			t.Fatalf("order %s belongs to %s", o.ID, o.ClientID)
		}
	}
	if _, err := f.quotes.CandidateOrders(context.Background(), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestQuoteScenario_DiscountAddedAndRemoved(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t, nil)

	created, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created.Quote.ID

	if _, err := f.items.AddItem(ctx, id, LineItemInput{Kind: entities.LineItemKindPart, PartID: "p-1", Quantity: dec("2"), UnitPrice: dec("50.00")}); err != nil {
		t.Fatalf("add part: %v", err)
	}
	assertTotal(t, f, id, "100.00")

	disc, err := f.items.AddItem(ctx, id, freeText("discount", "1", "-10.00"))
	if err != nil {
		t.Fatalf("add discount: %v", err)
	}
	assertTotal(t, f, id, "90.00")

	if err := f.items.DeleteItem(ctx, id, disc.ID); err != nil {
		t.Fatalf("delete discount: %v", err)
	}
	assertTotal(t, f, id, "100.00")
}

func TestQuoteScenario_ClientChangeClearsOrder(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t, nil)

	created, err := f.quotes.Create(ctx, QuoteInput{ClientID: "c-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	candidates, err := f.quotes.CandidateOrders(ctx, "c-1")
	if err != nil || len(candidates) == 0 {
		t.Fatalf("expected candidates, got %v %v", candidates, err)
	}
	picked := candidates[0].ID
	if _, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{OriginatingOrderID: &picked}); err != nil {
		t.Fatalf("pick order: %v", err)
	}

	view, err := f.quotes.Update(ctx, created.Quote.ID, QuotePatch{ClientID: strPtr("c-2")})
	if err != nil {
		t.Fatalf("change client: %v", err)
	}
	if view.Quote.OriginatingOrderID != nil {
		t.Fatalf("expected originating order to be cleared, got %s", *view.Quote.OriginatingOrderID)
	}
}

func assertTotal(t *testing.T, f *quoteFixture, id, want string) {
	t.Helper()
	view, err := f.quotes.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !view.Total.Equal(dec(want)) {
		t.Fatalf("expected total %s, got %s", want, view.Total)
	}
}
