package entities

import "github.com/shopspring/decimal"

// RenderedQuote is the structure handed to export collaborators (PDF, e-mail).
// Items keep their display order; each carries the resolved label and its
// signed subtotal.
type RenderedQuote struct {
	Quote      Quote              `json:"quote"`
	ClientName string             `json:"client_name"`
	OrderLabel string             `json:"order_label,omitempty"`
	Items      []RenderedLineItem `json:"items"`
	Total      decimal.Decimal    `json:"total"`
}

type RenderedLineItem struct {
	Item     LineItem        `json:"item"`
	Label    string          `json:"label"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
