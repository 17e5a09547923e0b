package request

import (
	"strings"
	"time"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase"
)

// CreateQuoteRequest creates a quote header, optionally with its first items
// in the same call.
type CreateQuoteRequest struct {
	ClientID           string            `json:"client_id" validate:"required"`
	OriginatingOrderID *string           `json:"originating_order_id,omitempty"`
	ValidUntil         *time.Time        `json:"valid_until,omitempty"`
	Notes              string            `json:"notes,omitempty" validate:"max=2000"`
	Items              []LineItemRequest `json:"items,omitempty"`
}

func (r CreateQuoteRequest) ToInput() usecase.QuoteInput {
	return usecase.QuoteInput{
		ClientID:           r.ClientID,
		OriginatingOrderID: r.OriginatingOrderID,
		ValidUntil:         r.ValidUntil,
		Notes:              r.Notes,
	}
}

func (r CreateQuoteRequest) ItemInputs() []usecase.LineItemInput {
	if len(r.Items) == 0 {
		return nil
	}
	out := make([]usecase.LineItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, it.ToInput())
	}
	return out
}

// UpdateQuoteRequest patches the header. Absent fields are left unchanged;
// an empty originating_order_id detaches the quote from its order. Field
// rules are checked by the use case after the quote is loaded.
type UpdateQuoteRequest struct {
	ClientID           *string    `json:"client_id,omitempty"`
	OriginatingOrderID *string    `json:"originating_order_id,omitempty"`
	Status             *string    `json:"status,omitempty"`
	ValidUntil         *time.Time `json:"valid_until,omitempty"`
	ClearValidUntil    bool       `json:"clear_valid_until,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

func (r UpdateQuoteRequest) ToPatch() usecase.QuotePatch {
	p := usecase.QuotePatch{
		ClientID:           r.ClientID,
		OriginatingOrderID: r.OriginatingOrderID,
		ValidUntil:         r.ValidUntil,
		ClearValidUntil:    r.ClearValidUntil,
		Notes:              r.Notes,
	}
	if r.Status != nil {
		s := entities.QuoteStatus(normalizeEnum(*r.Status))
		p.Status = &s
	}
	return p
}

// ListQuotesQuery holds the GET /quotes filters.
type ListQuotesQuery struct {
	ClientID   string `form:"client_id"`
	Status     string `form:"status" validate:"omitempty,quote_status"`
	Incomplete bool   `form:"incomplete"`
}

func (q ListQuotesQuery) NormalizedStatus() string {
	return normalizeEnum(q.Status)
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
