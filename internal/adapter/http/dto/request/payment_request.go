package request

import (
	"square_gateway/internal/domain/entities"
	"strings"
)

// PaymentRequest is the body of POST /api/process-payment.
//
// `nonce` is the card token produced by the Square Web Payments SDK on the browser.
type PaymentRequest struct {
	Nonce       string `json:"nonce" binding:"required"`
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Currency    string `json:"currency"`
	ReferenceID string `json:"referenceId"`
	LocationID  string `json:"locationId"`
}

func (r PaymentRequest) ToCommand() entities.PaymentCommand {
	return entities.PaymentCommand{
		SourceID:    strings.TrimSpace(r.Nonce),
		OrderID:     strings.TrimSpace(r.OrderID),
		LocationID:  strings.TrimSpace(r.LocationID),
		ReferenceID: strings.TrimSpace(r.ReferenceID),
		Amount: entities.Money{
			Amount:   r.Amount,
			Currency: strings.ToUpper(strings.TrimSpace(r.Currency)),
		},
	}
}
