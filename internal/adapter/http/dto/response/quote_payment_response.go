package response

import (
	"time"

	"fieldservice_quotes/internal/domain/entities"
)

type QuotePaymentResponse struct {
	ID      string    `json:"id"`
	QuoteID string    `json:"quote_id"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
	Amount  string    `json:"amount"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromQuotePayment(p entities.QuotePayment) QuotePaymentResponse {
	return QuotePaymentResponse{
		ID:                 p.ID,
		QuoteID:            p.QuoteID,
		Date:               p.Date,
		Status:             string(p.Status),
		Amount:             p.Amount.StringFixed(2),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}

func FromQuotePayments(payments []entities.QuotePayment) []QuotePaymentResponse {
	out := make([]QuotePaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromQuotePayment(p))
	}
	return out
}
