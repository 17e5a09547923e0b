package handlers

import (
	"net/http"

	"fieldservice_quotes/internal/adapter/http/dto/request"
	"fieldservice_quotes/internal/adapter/http/dto/response"
	"fieldservice_quotes/internal/adapter/http/validation"
	"fieldservice_quotes/internal/usecase"
	"fieldservice_quotes/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LineItemHandler handles the items of an existing quote. Bodies are only
// decoded here: the use case resolves the quote before it checks the item, so
// an unknown quote is reported as such whatever the payload.
type LineItemHandler struct {
	usecase usecase.ILineItemUseCase
	log     *logger.Logger
}

func NewLineItemHandler(uc usecase.ILineItemUseCase, log *logger.Logger) *LineItemHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &LineItemHandler{usecase: uc, log: log}
}

// AddItem godoc
// @Summary      Add a line item to a quote
// @Tags         line-items
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "Quote ID"
// @Param        item  body      request.LineItemRequest  true  "Item"
// @Success      201   {object}  response.LineItemResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Router       /quotes/{id}/items [post]
func (h *LineItemHandler) AddItem(c *gin.Context) {
	var payload request.LineItemRequest
	if appErr := validation.BindJSON(c, &payload); appErr != nil {
		writeAppError(c, appErr)
		return
	}

	item, err := h.usecase.AddItem(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, h.log, "[quote][items][handler] add failed", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromLineItem(item))
}

func (h *LineItemHandler) UpdateItem(c *gin.Context) {
	var payload request.UpdateLineItemRequest
	if appErr := validation.BindJSON(c, &payload); appErr != nil {
		writeAppError(c, appErr)
		return
	}

	item, err := h.usecase.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("item_id"), payload.ToPatch())
	if err != nil {
		writeError(c, h.log, "[quote][items][handler] update failed", err)
		return
	}
	c.JSON(http.StatusOK, response.FromLineItem(item))
}

func (h *LineItemHandler) DeleteItem(c *gin.Context) {
	if err := h.usecase.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("item_id")); err != nil {
		writeError(c, h.log, "[quote][items][handler] delete failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
