package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/domain/pricing"
	"fieldservice_quotes/internal/usecase/interfaces"
	"fieldservice_quotes/pkg/logger"
)

var (
	ErrInvalidProviderPayload     = errors.New("invalid payment provider payload")
	ErrQuoteNotApproved           = errors.New("quote not approved")
	ErrQuoteTotalNotPayable       = errors.New("quote total must be greater than zero")
	ErrPaymentGatewayMissing      = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// PaymentOptions tunes how provider payloads are checked.
//
// In mock mode the gateway never reaches the provider, so payer and payment
// method are not required.
type PaymentOptions struct {
	MockMode       bool
	TestPayerEmail string
}

// IQuotePaymentUseCase records payments (receipts) for approved quotes.
type IQuotePaymentUseCase interface {
	PayQuote(ctx context.Context, quoteID string, providerPayload json.RawMessage) (entities.QuotePayment, error)
	GetByID(ctx context.Context, id string) (entities.QuotePayment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuotePayment, error)
}

type QuotePaymentUseCase struct {
	repo      interfaces.IQuotePaymentRepository
	quoteRepo interfaces.IQuoteRepository
	gateway   interfaces.IPaymentGateway
	opts      PaymentOptions
	log       *logger.Logger
	nowFunc   func() time.Time
}

var _ IQuotePaymentUseCase = (*QuotePaymentUseCase)(nil)

func NewQuotePaymentUseCase(
	repo interfaces.IQuotePaymentRepository,
	quoteRepo interfaces.IQuoteRepository,
	gateway interfaces.IPaymentGateway,
	opts PaymentOptions,
	log *logger.Logger,
) *QuotePaymentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuotePaymentUseCase{repo: repo, quoteRepo: quoteRepo, gateway: gateway, opts: opts, log: log, nowFunc: time.Now}
}

// PayQuote charges the derived total of an approved quote through the payment
// gateway and stores the receipt. The amount always comes from the quote,
// never from the caller's payload.
func (u *QuotePaymentUseCase) PayQuote(ctx context.Context, quoteID string, providerPayload json.RawMessage) (entities.QuotePayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.QuotePayment{}, notFound("quote", quoteID)
	}
	ctx = u.log.WithQuoteID(ctx, quoteID)

	if len(providerPayload) == 0 {
		providerPayload = json.RawMessage("{}")
	}
	var reqMap map[string]any
	if err := json.Unmarshal(providerPayload, &reqMap); err != nil || reqMap == nil {
		return entities.QuotePayment{}, invalidCause("payload", ErrInvalidProviderPayload)
	}
	if u.gateway == nil {
		return entities.QuotePayment{}, collaborator("payment gateway", ErrPaymentGatewayMissing)
	}

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.QuotePayment{}, collaborator("load quote", err)
	}
	if q.ID == "" {
		return entities.QuotePayment{}, notFound("quote", quoteID)
	}
	if q.Status != entities.QuoteStatusApproved {
		u.log.Warn(u.log.WithField(ctx, "status", q.Status), "[payment][usecase] quote not approved", nil)
		return entities.QuotePayment{}, invalidCause("status", ErrQuoteNotApproved)
	}
	total := pricing.QuoteTotal(q)
	if !total.IsPositive() {
		return entities.QuotePayment{}, invalidCause("total", ErrQuoteTotalNotPayable)
	}

	if !u.opts.MockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			return entities.QuotePayment{}, invalidCause("payment_method_id", ErrInvalidProviderPayload)
		}
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			return entities.QuotePayment{}, invalidCause("payer", ErrInvalidProviderPayload)
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = quoteID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Quote %s", quoteID)
	}
	amount, _ := total.Round(2).Float64()
	reqMap["transaction_amount"] = amount

	body, err := json.Marshal(reqMap)
	if err != nil {
		return entities.QuotePayment{}, err
	}

	u.log.Info(u.log.WithField(ctx, "amount", total.StringFixed(2)), "[payment][usecase] calling payment gateway")
	providerID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, body)
	if err != nil {
		u.log.Error(ctx, "[payment][usecase] payment gateway failed", err)
		switch {
		case isGatewayUnauthorized(err):
			return entities.QuotePayment{}, collaborator("payment gateway", ErrPaymentGatewayUnauthorized)
		case isGatewayBadRequest(err):
			return entities.QuotePayment{}, invalidCause("payload", ErrPaymentGatewayBadRequest)
		}
		return entities.QuotePayment{}, collaborator("payment gateway", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		u.log.Warn(ctx, "[payment][usecase] provider response is not a json object", err)
	}

	p := entities.QuotePayment{
		ID:                 providerID,
		QuoteID:            quoteID,
		Date:               u.nowFunc().UTC(),
		Status:             entities.MapProviderStatus(providerStatus),
		Amount:             total,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return entities.QuotePayment{}, collaborator("create payment", err)
	}
	u.log.Info(u.log.WithFields(ctx, map[string]any{"payment_id": created.ID, "status": created.Status}), "[payment][usecase] payment recorded")
	return created, nil
}

func (u *QuotePaymentUseCase) GetByID(ctx context.Context, id string) (entities.QuotePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuotePayment{}, notFound("payment", id)
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuotePayment{}, collaborator("load payment", err)
	}
	if p.ID == "" {
		return entities.QuotePayment{}, notFound("payment", id)
	}
	return p, nil
}

func (u *QuotePaymentUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuotePayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, notFound("quote", quoteID)
	}
	payments, err := u.repo.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, collaborator("list payments", err)
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })
	return payments, nil
}

// ensurePayerDefaults fills payer.type and, when neither id nor email is
// present, the configured sandbox payer email.
func (u *QuotePaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") && u.opts.TestPayerEmail != "" {
		payer["email"] = u.opts.TestPayerEmail
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v)) != ""
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
