package response

import "square_gateway/internal/domain/entities"

const (
	MessagePaymentSubmitted = "Payment request submitted."
	MessageOrderInitiated   = "Order creation initiated."
	MessageWebhookProcessed = "Webhook processed successfully"
)

type LocationResponse struct {
	LocationID string `json:"locationId"`
}

type PaymentResponse struct {
	Message     string `json:"message"`
	PaymentID   string `json:"paymentId"`
	Status      string `json:"status"`
	OrderID     string `json:"orderId,omitempty"`
	ReferenceID string `json:"referenceId"`
	ReceiptURL  string `json:"receiptUrl,omitempty"`
}

type OrderResponse struct {
	Message        string `json:"message"`
	OrderID        string `json:"orderId"`
	LocationID     string `json:"locationId,omitempty"`
	State          string `json:"state,omitempty"`
	TotalAmount    int64  `json:"totalAmount"`
	Currency       string `json:"currency,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

type WebhookResponse struct {
	Message string `json:"message"`
}

func FromLocationID(id string) LocationResponse {
	return LocationResponse{LocationID: id}
}

func FromPaymentResult(p entities.PaymentResult) PaymentResponse {
	return PaymentResponse{
		Message:     MessagePaymentSubmitted,
		PaymentID:   p.ID,
		Status:      p.Status,
		OrderID:     p.OrderID,
		ReferenceID: p.ReferenceID,
		ReceiptURL:  p.ReceiptURL,
	}
}

func FromOrderResult(o entities.OrderResult) OrderResponse {
	return OrderResponse{
		Message:        MessageOrderInitiated,
		OrderID:        o.ID,
		LocationID:     o.LocationID,
		State:          o.State,
		TotalAmount:    o.TotalMoney.Amount,
		Currency:       o.TotalMoney.Currency,
		IdempotencyKey: o.IdempotencyKey,
	}
}

func Webhook() WebhookResponse {
	return WebhookResponse{Message: MessageWebhookProcessed}
}
