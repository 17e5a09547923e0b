package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fieldservice_quotes/internal/adapter/http/dto/request"
	"fieldservice_quotes/internal/adapter/http/dto/response"
	"fieldservice_quotes/internal/usecase"
	"fieldservice_quotes/pkg"
	"fieldservice_quotes/pkg/logger"

	"github.com/gin-gonic/gin"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// QuotePaymentHandler handles HTTP requests for quote payments.
type QuotePaymentHandler struct {
	usecase  usecase.IQuotePaymentUseCase
	mockMode bool
	log      *logger.Logger
}

// NewQuotePaymentHandler builds the handler. In mockMode a malformed body is
// replaced by an empty provider payload instead of being rejected.
func NewQuotePaymentHandler(uc usecase.IQuotePaymentUseCase, mockMode bool, log *logger.Logger) *QuotePaymentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &QuotePaymentHandler{usecase: uc, mockMode: mockMode, log: log}
}

// PayQuote godoc
// @Summary      Pay an approved quote
// @Description  Charges the derived quote total through the payment provider. The body is the provider payload, optionally wrapped in provider_payload.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true   "Quote ID"
// @Param        payment  body      request.QuotePaymentRequest  false  "Provider payload"
// @Success      201      {object}  response.QuotePaymentResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quotes/{id}/payments [post]
func (h *QuotePaymentHandler) PayQuote(c *gin.Context) {
	quoteID := c.Param("id")
	ctx := h.log.WithQuoteID(c.Request.Context(), quoteID)

	payload, err := readProviderPayload(c)
	if err != nil {
		if !h.mockMode {
			h.log.Debug(h.log.WithField(ctx, "error", err.Error()), "[payment][handler] invalid payload")
			writeAppError(c, errInvalidPaymentPayload.WithDetail("body", err.Error()))
			return
		}
		h.log.Warn(ctx, "[payment][handler] payload invalid in mock mode; using empty payload", err)
		payload = json.RawMessage("{}")
	}

	created, err := h.usecase.PayQuote(ctx, quoteID, payload)
	if err != nil {
		writeError(c, h.log, "[payment][handler] pay failed", err)
		return
	}
	h.log.Info(h.log.WithFields(ctx, map[string]any{"payment_id": created.ID, "status": created.Status}), "[payment][handler] pay success")
	c.JSON(http.StatusCreated, response.FromQuotePayment(created))
}

// ListPayments returns every payment of a quote, oldest first.
func (h *QuotePaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.usecase.ListByQuoteID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, "[payment][handler] list failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotePayments(payments))
}

func (h *QuotePaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		writeError(c, h.log, "[payment][handler] get failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotePayment(p))
}

// readProviderPayload accepts either the bare provider payload or one wrapped
// in {"provider_payload": ...}. An empty body is an empty payload.
func readProviderPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if _, ok := envelope["provider_payload"]; ok {
			var wrapped request.QuotePaymentRequest
			if err := json.Unmarshal(raw, &wrapped); err != nil {
				return nil, err
			}
			if v := strings.TrimSpace(string(wrapped.ProviderPayload)); v == "" || v == "null" {
				return nil, errors.New("provider_payload cannot be empty")
			}
			return wrapped.ProviderPayload, nil
		}
	}
	return json.RawMessage(raw), nil
}
