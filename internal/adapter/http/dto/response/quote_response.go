package response

import (
	"time"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/domain/pricing"
	"fieldservice_quotes/internal/usecase"
)

// Money values are serialized as fixed two-decimal strings so that clients
// never see binary float rounding.

type LineItemResponse struct {
	ID            string `json:"id"`
	QuoteID       string `json:"quote_id"`
	Kind          string `json:"kind"`
	PartID        string `json:"part_id,omitempty"`
	ServiceTypeID string `json:"service_type_id,omitempty"`
	Description   string `json:"description,omitempty"`
	Quantity      int64  `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Subtotal      string `json:"subtotal"`
	Position      int    `json:"position"`
}

type QuoteResponse struct {
	ID                 string             `json:"id"`
	ClientID           string             `json:"client_id"`
	OriginatingOrderID *string            `json:"originating_order_id,omitempty"`
	Status             string             `json:"status"`
	ValidUntil         *time.Time         `json:"valid_until,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	Items              []LineItemResponse `json:"items"`
	Total              string             `json:"total"`
	Incomplete         bool               `json:"incomplete"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func FromLineItem(it entities.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:            it.ID,
		QuoteID:       it.QuoteID,
		Kind:          string(it.Kind),
		PartID:        it.PartID,
		ServiceTypeID: it.ServiceTypeID,
		Description:   it.Description,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice.StringFixed(2),
		Subtotal:      pricing.Subtotal(it).StringFixed(2),
		Position:      it.Position,
	}
}

func FromQuoteView(v usecase.QuoteView) QuoteResponse {
	q := v.Quote
	items := make([]LineItemResponse, 0, len(q.LineItems))
	for _, it := range q.LineItems {
		items = append(items, FromLineItem(it))
	}
	return QuoteResponse{
		ID:                 q.ID,
		ClientID:           q.ClientID,
		OriginatingOrderID: q.OriginatingOrderID,
		Status:             string(q.Status),
		ValidUntil:         q.ValidUntil,
		Notes:              q.Notes,
		Items:              items,
		Total:              v.Total.StringFixed(2),
		Incomplete:         v.Incomplete,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

func FromQuoteViews(views []usecase.QuoteView) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromQuoteView(v))
	}
	return out
}

type RenderedLineItemResponse struct {
	Label     string `json:"label"`
	Kind      string `json:"kind"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
	Discount  bool   `json:"discount"`
}

// RenderedQuoteResponse is the export view of a quote (PDF, e-mail).
type RenderedQuoteResponse struct {
	ID         string                     `json:"id"`
	Status     string                     `json:"status"`
	ClientID   string                     `json:"client_id"`
	ClientName string                     `json:"client_name"`
	OrderLabel string                     `json:"order_label,omitempty"`
	ValidUntil *time.Time                 `json:"valid_until,omitempty"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []RenderedLineItemResponse `json:"items"`
	Total      string                     `json:"total"`
}

func FromRenderedQuote(r entities.RenderedQuote) RenderedQuoteResponse {
	items := make([]RenderedLineItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, RenderedLineItemResponse{
			Label:     it.Label,
			Kind:      string(it.Item.Kind),
			Quantity:  it.Item.Quantity,
			UnitPrice: it.Item.UnitPrice.StringFixed(2),
			Subtotal:  it.Subtotal.StringFixed(2),
			Discount:  it.Item.IsDiscount(),
		})
	}
	return RenderedQuoteResponse{
		ID:         r.Quote.ID,
		Status:     string(r.Quote.Status),
		ClientID:   r.Quote.ClientID,
		ClientName: r.ClientName,
		OrderLabel: r.OrderLabel,
		ValidUntil: r.Quote.ValidUntil,
		Notes:      r.Quote.Notes,
		Items:      items,
		Total:      r.Total.StringFixed(2),
	}
}

type ServiceOrderResponse struct {
	ID         string `json:"id"`
	ClientID   string `json:"client_id"`
	Identifier string `json:"identifier"`
}

func FromServiceOrders(orders []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ServiceOrderResponse{ID: o.ID, ClientID: o.ClientID, Identifier: o.Identifier})
	}
	return out
}
