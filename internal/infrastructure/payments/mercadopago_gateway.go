package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fieldservice_quotes/internal/config"
	"fieldservice_quotes/internal/usecase/interfaces"
	"fieldservice_quotes/pkg/logger"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway creates payments through the Mercado Pago SDK. In mock
// mode it never leaves the process and approves every payment, echoing the
// request back as the provider response.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	log      *logger.Logger
	nowFunc  func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg config.MercadoPagoConfig, log *logger.Logger) (*MercadoPagoGateway, error) {
	if log == nil {
		log = logger.Nop()
	}
	ctx := context.Background()
	if cfg.Mock {
		log.Info(ctx, "[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log, nowFunc: time.Now}, nil
	}

	if cfg.AccessToken == "" {
		log.Error(ctx, "[payment][gateway] missing access token", ErrMissingMercadoPagoAccessToken)
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		log.Error(ctx, "[payment][gateway] failed creating sdk config", err)
		return nil, err
	}
	log.Info(ctx, "[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(sdkCfg), log: log, nowFunc: time.Now}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g != nil && g.mockMode {
		return g.mockCreate(ctx, requestPayload)
	}

	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Debug(g.log.WithField(ctx, "payload_len", len(requestPayload)), "[payment][gateway] create start")

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		return "", "", nil, fmt.Errorf("decode payment request: %w", err)
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.log.Error(ctx, "[payment][gateway] sdk create failed", err)
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	g.log.Info(g.log.WithFields(ctx, map[string]any{"provider_payment_id": resp.ID, "provider_status": resp.Status}), "[payment][gateway] create success")

	return fmt.Sprintf("%d", resp.ID), resp.Status, b, nil
}

func (g *MercadoPagoGateway) mockCreate(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	now := g.nowFunc().UTC()
	id := strconv.FormatInt(now.UnixNano(), 10)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	if _, ok := resp["date_created"]; !ok {
		resp["date_created"] = now.Format(time.RFC3339Nano)
	}
	if _, ok := resp["date_approved"]; !ok {
		resp["date_approved"] = now.Format(time.RFC3339Nano)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	g.log.Info(g.log.WithField(ctx, "provider_payment_id", id), "[payment][gateway] mock create success")
	return id, "approved", b, nil
}
