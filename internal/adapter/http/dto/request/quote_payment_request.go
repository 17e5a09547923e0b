package request

import "encoding/json"

// QuotePaymentRequest wraps the provider payload. `provider_payload` is kept
// as raw JSON since the provider schema varies by payment method.
type QuotePaymentRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
