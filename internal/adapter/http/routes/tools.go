package routes

import (
	"net/http"

	"cotizador_seguros/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing          = "/ping"
	PathTools         = "/tools"
	PathQuotes        = "/quotes"
	PathCustomers     = "/customers"
	PathConversations = "/conversations"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addToolRoutes(rg *gin.RouterGroup, toolsHandler *handlers.ToolsHandler) {
	tools := rg.Group(PathTools)
	{
		tools.POST("/identify-customer", toolsHandler.IdentifyCustomer)
		tools.POST("/identify-vehicle", toolsHandler.IdentifyVehicle)
		tools.POST("/:tool", toolsHandler.Dispatch)
	}
}

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("/:id", quoteHandler.GetQuote)
	}
}

func addCustomerRoutes(rg *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customers := rg.Group(PathCustomers)
	{
		customers.GET("/:id", customerHandler.GetCustomer)
	}
}

func addConversationRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, eventsHandler *handlers.EventsHandler) {
	conversations := rg.Group(PathConversations)
	{
		conversations.GET("/:external_id/quotes", quoteHandler.ListByConversation)
		conversations.GET("/:external_id/events", eventsHandler.Stream)
	}
}
