package entities

import "github.com/shopspring/decimal"

// LineItemKind tags which payload a LineItem carries.
type LineItemKind string

const (
	LineItemKindPart     LineItemKind = "PART"
	LineItemKindService  LineItemKind = "SERVICE"
	LineItemKindFreeText LineItemKind = "FREE_TEXT"
	// LineItemKindDiscount carries a non-negative magnitude in UnitPrice; its
	// subtotal is negative.
	LineItemKindDiscount LineItemKind = "DISCOUNT"
)

func (k LineItemKind) IsValid() bool {
	switch k {
	case LineItemKindPart, LineItemKindService, LineItemKindFreeText, LineItemKindDiscount:
		return true
	}
	return false
}

// LineItem is one entry of a Quote. Exactly one of PartID, ServiceTypeID or
// Description is set, depending on Kind (Discount uses Description).
type LineItem struct {
	ID            string          `json:"id"`
	QuoteID       string          `json:"quote_id"`
	Kind          LineItemKind    `json:"kind"`
	PartID        string          `json:"part_id,omitempty"`
	ServiceTypeID string          `json:"service_type_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Position      int             `json:"position"`
}

// IsDiscount reports whether the item reduces the total: either an explicit
// discount or a free-text entry priced below zero.
func (it LineItem) IsDiscount() bool {
	if it.Kind == LineItemKindDiscount {
		return true
	}
	return it.Kind == LineItemKindFreeText && it.UnitPrice.IsNegative()
}
