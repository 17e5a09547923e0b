package response

import (
	"encoding/json"
	"testing"
	"time"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromQuoteView(t *testing.T) {
	now := time.Now().UTC()
	order := "so-1"
	q := entities.Quote{
		ID:                 "q-1",
		ClientID:           "c-1",
		OriginatingOrderID: &order,
		Status:             entities.QuoteStatusPending,
		LineItems: []entities.LineItem{
			{ID: "i-1", QuoteID: "q-1", Kind: entities.LineItemKindPart, PartID: "p-1", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
			{ID: "i-2", QuoteID: "q-1", Kind: entities.LineItemKindDiscount, Description: "loyalty", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Position: 1},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res := FromQuoteView(usecase.NewQuoteView(q))
	if res.ID != "q-1" || res.ClientID != "c-1" || res.Status != "PENDING" {
		t.Fatalf("unexpected header: %+v", res)
	}
	if res.OriginatingOrderID == nil || *res.OriginatingOrderID != "so-1" {
		t.Fatalf("unexpected order id: %+v", res.OriginatingOrderID)
	}
	if res.Total != "90.00" || res.Incomplete {
		t.Fatalf("unexpected total: %s incomplete=%v", res.Total, res.Incomplete)
	}
	if len(res.Items) != 2 || res.Items[0].Subtotal != "100.00" || res.Items[1].Subtotal != "-10.00" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.Items[1].UnitPrice != "10.00" {
		t.Fatalf("discount keeps its magnitude, got %s", res.Items[1].UnitPrice)
	}
}

func TestFromQuoteView_IncompleteHasEmptyItems(t *testing.T) {
	res := FromQuoteView(usecase.NewQuoteView(entities.Quote{ID: "q-2", Status: entities.QuoteStatusPending}))
	if !res.Incomplete || res.Total != "0.00" {
		t.Fatalf("unexpected: %+v", res)
	}

	body, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatal(err)
	}
	if items, ok := decoded["items"].([]any); !ok || len(items) != 0 {
		t.Fatalf("items should serialize as [], got %s", body)
	}
}

func TestFromRenderedQuote(t *testing.T) {
	r := entities.RenderedQuote{
		Quote:      entities.Quote{ID: "q-1", ClientID: "c-1", Status: entities.QuoteStatusApproved},
		ClientName: "Oficina Central",
		OrderLabel: "OS-0001",
		Items: []entities.RenderedLineItem{
			{Item: entities.LineItem{Kind: entities.LineItemKindService, Quantity: 1, UnitPrice: decimal.RequireFromString("80.5")}, Label: "Brake service", Subtotal: decimal.RequireFromString("80.5")},
			{Item: entities.LineItem{Kind: entities.LineItemKindFreeText, Description: "goodwill", Quantity: 1, UnitPrice: decimal.NewFromInt(-5)}, Label: "goodwill", Subtotal: decimal.NewFromInt(-5)},
		},
		Total: decimal.RequireFromString("75.5"),
	}

	res := FromRenderedQuote(r)
	if res.ClientName != "Oficina Central" || res.OrderLabel != "OS-0001" || res.Status != "APPROVED" {
		t.Fatalf("unexpected header: %+v", res)
	}
	if len(res.Items) != 2 || res.Items[0].Label != "Brake service" || res.Items[0].Subtotal != "80.50" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.Items[0].Discount || !res.Items[1].Discount || res.Items[1].Subtotal != "-5.00" {
		t.Fatalf("negative free text should render as a discount: %+v", res.Items)
	}
	if res.Total != "75.50" {
		t.Fatalf("unexpected total: %s", res.Total)
	}
}

func TestFromServiceOrders(t *testing.T) {
	res := FromServiceOrders(nil)
	if res == nil || len(res) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", res)
	}

	res = FromServiceOrders([]entities.ServiceOrder{{ID: "so-1", ClientID: "c-1", Identifier: "OS-0001"}})
	if len(res) != 1 || res[0].Identifier != "OS-0001" {
		t.Fatalf("unexpected orders: %+v", res)
	}
}

func TestFromQuotePayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.QuotePayment{
		ID:                 "pay-1",
		QuoteID:            "q-1",
		Date:               now,
		Status:             entities.PaymentStatusApproved,
		Amount:             decimal.NewFromInt(105),
		ProviderPayloadRaw: json.RawMessage(`{"id":1}`),
		ProviderPayload:    map[string]interface{}{"id": float64(1)},
	}

	res := FromQuotePayment(p)
	if res.ID != "pay-1" || res.QuoteID != "q-1" || res.Status != "approved" {
		t.Fatalf("unexpected ids/status: %+v", res)
	}
	if res.Amount != "105.00" || !res.Date.Equal(now) {
		t.Fatalf("unexpected amount/date: %+v", res)
	}
	if res.ProviderPayloadRaw != `{"id":1}` || res.ProviderPayload["id"] != float64(1) {
		t.Fatalf("unexpected provider payload: %+v", res)
	}
	if got := FromQuotePayments([]entities.QuotePayment{p, p}); len(got) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(got))
	}
}
