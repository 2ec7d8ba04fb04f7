package handlers

import (
	"log"
	"net/http"
	response "square_gateway/internal/adapter/http/dto/response"
	"square_gateway/internal/usecase"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives Square event notifications.
type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// Receive always answers 200 so Square does not redeliver events we already saw or can
// never parse.
//
// @Summary      Receive a Square webhook notification
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        x-square-hmacsha256-signature  header    string  false  "base64 HMAC-SHA256 of notification URL + body"
// @Success      200                            {object}  response.WebhookResponse
// @Failure      401                            {object}  pkg.HTTPError
// @Router       /payment-webhook [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] read body failed err=%v", err)
		c.JSON(http.StatusOK, response.Webhook())
		return
	}

	ack := h.usecase.Receive(c.Request.Context(), raw)
	log.Printf("[webhook][handler] ack event_id=%s type=%s parsed=%t duplicate=%t published=%t", ack.EventID, ack.Type, ack.Parsed, ack.Duplicate, ack.Published)

	c.JSON(http.StatusOK, response.Webhook())
}
