package request

import (
	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase"

	"github.com/shopspring/decimal"
)

// LineItemRequest is one item of a quote. Quantity accepts a decimal so that
// 1.5 is rejected rather than truncated; prices may be sent as numbers or
// strings. Item rules are checked by the use case once the quote is known.
type LineItemRequest struct {
	Kind          string          `json:"kind"`
	PartID        string          `json:"part_id,omitempty"`
	ServiceTypeID string          `json:"service_type_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

func (r LineItemRequest) ToInput() usecase.LineItemInput {
	return usecase.LineItemInput{
		Kind:          entities.LineItemKind(normalizeEnum(r.Kind)),
		PartID:        r.PartID,
		ServiceTypeID: r.ServiceTypeID,
		Description:   r.Description,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
	}
}

type UpdateLineItemRequest struct {
	Kind          *string          `json:"kind,omitempty"`
	PartID        *string          `json:"part_id,omitempty"`
	ServiceTypeID *string          `json:"service_type_id,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
}

func (r UpdateLineItemRequest) ToPatch() usecase.LineItemPatch {
	p := usecase.LineItemPatch{
		PartID:        r.PartID,
		ServiceTypeID: r.ServiceTypeID,
		Description:   r.Description,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
	}
	if r.Kind != nil {
		k := entities.LineItemKind(normalizeEnum(*r.Kind))
		p.Kind = &k
	}
	return p
}
