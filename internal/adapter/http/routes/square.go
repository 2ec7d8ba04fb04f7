package routes

import (
	"square_gateway/internal/adapter/http/handlers"
	"square_gateway/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathAPI         = "/api"
	PathWebhook     = "/payment-webhook"
	PathLocationID  = "/get-location-id"
	PathPayment     = "/process-payment"
	PathCreateOrder = "/create-order"
)

func addSquareRoutes(rg *gin.RouterGroup, squareHandler *handlers.SquareHandler) {
	rg.GET(PathLocationID, squareHandler.GetLocationID)
	rg.POST(PathPayment, squareHandler.ProcessPayment)
	rg.POST(PathCreateOrder, squareHandler.CreateOrder)
}

func addWebhookRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler, signatureKey, notificationURL string) {
	rg.POST(PathWebhook, middleware.VerifySquareSignature(signatureKey, notificationURL), webhookHandler.Receive)
}
