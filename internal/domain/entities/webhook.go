package entities

import (
	"encoding/json"
	"time"
)

// WebhookPayload is the envelope Square posts for every subscribed event.
//
// Data.Object is kept raw: its shape depends on Type and unknown shapes must still be accepted.
type WebhookPayload struct {
	MerchantID string      `json:"merchant_id"`
	Type       string      `json:"type"`
	EventID    string      `json:"event_id"`
	CreatedAt  string      `json:"created_at"`
	Data       WebhookData `json:"data"`
}

type WebhookData struct {
	Type   string          `json:"type"`
	ID     string          `json:"id"`
	Object json.RawMessage `json:"object,omitempty"`
}

// OrderEvent is the body of data.object.order_created / order_updated.
type OrderEvent struct {
	OrderID    string `json:"order_id"`
	Version    int    `json:"version"`
	LocationID string `json:"location_id"`
	State      string `json:"state"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// PaymentEvent is the subset of data.object.payment this service reads.
type PaymentEvent struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id,omitempty"`
	LocationID  string `json:"location_id,omitempty"`
	Status      string `json:"status"`
	ReferenceID string `json:"reference_id,omitempty"`
	AmountMoney Money  `json:"amount_money"`
}

// WebhookReceipt is the dedupe marker stored for a received event.
type WebhookReceipt struct {
	EventID    string
	Type       string
	MerchantID string
	ReceivedAt time.Time
	ExpiresAt  time.Time
}

// WebhookAck is what the receiver reports back to the HTTP layer.
type WebhookAck struct {
	EventID   string
	Type      string
	Parsed    bool
	Duplicate bool
	Published bool
}

// OrderCreated decodes data.object.order_created. ok is false when the key is absent or malformed.
func (p WebhookPayload) OrderCreated() (OrderEvent, bool) {
	return p.orderEvent("order_created")
}

// OrderUpdated decodes data.object.order_updated.
func (p WebhookPayload) OrderUpdated() (OrderEvent, bool) {
	return p.orderEvent("order_updated")
}

// Payment decodes data.object.payment.
func (p WebhookPayload) Payment() (PaymentEvent, bool) {
	raw, ok := p.objectField("payment")
	if !ok {
		return PaymentEvent{}, false
	}
	var evt PaymentEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		return PaymentEvent{}, false
	}
	return evt, true
}

func (p WebhookPayload) orderEvent(key string) (OrderEvent, bool) {
	raw, ok := p.objectField(key)
	if !ok {
		return OrderEvent{}, false
	}
	var evt OrderEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		return OrderEvent{}, false
	}
	return evt, true
}

func (p WebhookPayload) objectField(key string) (json.RawMessage, bool) {
	if len(p.Data.Object) == 0 {
		return nil, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(p.Data.Object, &fields); err != nil {
		return nil, false
	}
	raw, ok := fields[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}
