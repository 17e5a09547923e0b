package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// QuotePayment is the receipt of a payment made against an approved quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
//
// ProviderPayloadRaw keeps the provider response body for audit; ProviderPayload
// is the parsed form, when the body is a JSON object.
type QuotePayment struct {
	ID      string          `json:"id"`
	QuoteID string          `json:"quote_id"`
	Date    time.Time       `json:"date"`
	Status  PaymentStatus   `json:"status"`
	Amount  decimal.Decimal `json:"amount"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

// MapProviderStatus translates a payment provider status into ours.
func MapProviderStatus(providerStatus string) PaymentStatus {
	switch providerStatus {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusDenied
	}
	return PaymentStatusPending
}
