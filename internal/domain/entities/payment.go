package entities

// Money is an amount in the smallest denomination of Currency (cents for USD).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentCommand is everything the gateway needs to create one payment.
//
// SourceID is the single-use nonce produced by the Web Payments SDK on the checkout page.
// IdempotencyKey must be fresh for every logical payment; the gateway may resend it only
// when retrying the identical call.
type PaymentCommand struct {
	SourceID       string
	OrderID        string
	LocationID     string
	ReferenceID    string
	IdempotencyKey string
	Amount         Money
}

type PaymentResult struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	OrderID     string `json:"order_id,omitempty"`
	ReferenceID string `json:"reference_id,omitempty"`
	ReceiptURL  string `json:"receipt_url,omitempty"`
}
