// Package pricing computes line item subtotals and quote totals.
//
// Totals are not clamped: a quote whose discounts exceed its positive items
// has a negative total.
package pricing

import (
	"fieldservice_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Subtotal returns quantity × unit price. Discount items carry a magnitude
// and contribute its negation.
func Subtotal(item entities.LineItem) decimal.Decimal {
	sub := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
	if item.Kind == entities.LineItemKindDiscount {
		return sub.Neg()
	}
	return sub
}

// Total sums the subtotals of items.
func Total(items []entities.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(Subtotal(it))
	}
	return total
}

// QuoteTotal is Total over the quote's current items.
func QuoteTotal(q entities.Quote) decimal.Decimal {
	return Total(q.LineItems)
}
