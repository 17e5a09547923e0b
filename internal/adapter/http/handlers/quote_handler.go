package handlers

import (
	"net/http"

	"fieldservice_quotes/internal/adapter/http/dto/request"
	"fieldservice_quotes/internal/adapter/http/dto/response"
	"fieldservice_quotes/internal/adapter/http/validation"
	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase"
	"fieldservice_quotes/internal/usecase/interfaces"
	"fieldservice_quotes/pkg"
	"fieldservice_quotes/pkg/logger"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

var errInvalidQuery = pkg.NewDomainErrorSimple("INVALID_QUERY", "Invalid query parameters", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for the quote aggregate.
type QuoteHandler struct {
	usecase  usecase.IQuoteUseCase
	validate *validatorv10.Validate
	log      *logger.Logger
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, v *validatorv10.Validate, log *logger.Logger) *QuoteHandler {
	if v == nil {
		v = validation.New()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QuoteHandler{usecase: uc, validate: v, log: log}
}

// CreateQuote godoc
// @Summary      Create a quote
// @Description  Creates a PENDING quote for a client, optionally with its first items in one transaction.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        quote  body      request.CreateQuoteRequest  true  "Quote"
// @Success      201    {object}  response.QuoteResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      422    {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if appErr := validation.BindAndValidate(c, &payload, h.validate); appErr != nil {
		writeAppError(c, appErr)
		return
	}

	var (
		view usecase.QuoteView
		err  error
	)
	if items := payload.ItemInputs(); len(items) > 0 {
		view, err = h.usecase.CreateWithItems(c.Request.Context(), payload.ToInput(), items)
	} else {
		view, err = h.usecase.Create(c.Request.Context(), payload.ToInput())
	}
	if err != nil {
		writeError(c, h.log, "[quote][handler] create failed", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuoteView(view))
}

// ListQuotes godoc
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        client_id   query     string  false  "Client"
// @Param        status      query     string  false  "Status"
// @Param        incomplete  query     bool    false  "Only quotes without items"
// @Success      200         {array}   response.QuoteResponse
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query request.ListQuotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeAppError(c, errInvalidQuery.WithDetail("query", err.Error()))
		return
	}
	if appErr := validation.Validate(query, h.validate); appErr != nil {
		writeAppError(c, appErr)
		return
	}

	views, err := h.usecase.List(c.Request.Context(), interfaces.QuoteFilter{
		ClientID:       query.ClientID,
		Status:         entities.QuoteStatus(query.NormalizedStatus()),
		OnlyIncomplete: query.Incomplete,
	})
	if err != nil {
		writeError(c, h.log, "[quote][handler] list failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteViews(views))
}

// GetQuote godoc
// @Summary      Get a quote with its items and derived total
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	view, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, "[quote][handler] get failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteView(view))
}

// UpdateQuote godoc
// @Summary      Update quote header fields
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id     path      string                      true  "Quote ID"
// @Param        quote  body      request.UpdateQuoteRequest  true  "Changes"
// @Success      200    {object}  response.QuoteResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      404    {object}  pkg.HTTPError
// @Failure      409    {object}  pkg.HTTPError
// @Router       /quotes/{id} [patch]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var payload request.UpdateQuoteRequest
	if appErr := validation.BindJSON(c, &payload); appErr != nil {
		writeAppError(c, appErr)
		return
	}

	view, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		writeError(c, h.log, "[quote][handler] update failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteView(view))
}

// DeleteQuote removes the quote and every item it owns.
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, "[quote][handler] delete failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RenderQuote returns the export view of a quote.
func (h *QuoteHandler) RenderQuote(c *gin.Context) {
	rendered, err := h.usecase.Render(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, "[quote][handler] render failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromRenderedQuote(rendered))
}

// CandidateOrders lists the service orders a new quote for the client may
// originate from.
func (h *QuoteHandler) CandidateOrders(c *gin.Context) {
	orders, err := h.usecase.CandidateOrders(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		writeError(c, h.log, "[quote][handler] candidate orders failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}
