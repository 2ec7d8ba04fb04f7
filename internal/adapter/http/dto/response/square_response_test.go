package response

import (
	"encoding/json"
	"testing"

	"square_gateway/internal/domain/entities"
)

func TestFromPaymentResult(t *testing.T) {
	res := FromPaymentResult(entities.PaymentResult{ID: "pay-1", Status: "COMPLETED", ReferenceID: "ref-1"})
	if res.Message != "Payment request submitted." || res.PaymentID != "pay-1" || res.Status != "COMPLETED" || res.ReferenceID != "ref-1" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestFromOrderResult(t *testing.T) {
	res := FromOrderResult(entities.OrderResult{
		ID:             "order-1",
		LocationID:     "L1",
		State:          "OPEN",
		TotalMoney:     entities.Money{Amount: 1000, Currency: "USD"},
		IdempotencyKey: "key-1",
	})
	if res.Message != "Order creation initiated." || res.OrderID != "order-1" || res.IdempotencyKey != "key-1" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.TotalAmount != 1000 || res.Currency != "USD" {
		t.Fatalf("unexpected total: %+v", res)
	}
}

func TestResponses_JSONFieldNames(t *testing.T) {
	raw, _ := json.Marshal(FromLocationID("L1"))
	if string(raw) != `{"locationId":"L1"}` {
		t.Fatalf("unexpected location body: %s", raw)
	}
	raw, _ = json.Marshal(Webhook())
	if string(raw) != `{"message":"Webhook processed successfully"}` {
		t.Fatalf("unexpected webhook body: %s", raw)
	}
}
