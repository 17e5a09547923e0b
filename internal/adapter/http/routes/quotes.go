package routes

import (
	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathClients  = "/clients"
	PathPayments = "/payments"
)

func addQuoteRoutes(rg *gin.RouterGroup, h Handlers) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", h.Quotes.CreateQuote)
		quotes.GET("", h.Quotes.ListQuotes)
		quotes.GET("/:id", h.Quotes.GetQuote)
		quotes.PATCH("/:id", h.Quotes.UpdateQuote)
		quotes.DELETE("/:id", h.Quotes.DeleteQuote)
		quotes.GET("/:id/render", h.Quotes.RenderQuote)

		quotes.POST("/:id/items", h.LineItems.AddItem)
		quotes.PATCH("/:id/items/:item_id", h.LineItems.UpdateItem)
		quotes.DELETE("/:id/items/:item_id", h.LineItems.DeleteItem)

		quotes.POST("/:id/payments", h.Payments.PayQuote)
		quotes.GET("/:id/payments", h.Payments.ListPayments)
	}

	rg.GET(PathClients+"/:client_id/candidate-orders", h.Quotes.CandidateOrders)
	rg.GET(PathPayments+"/:payment_id", h.Payments.GetPayment)
}
