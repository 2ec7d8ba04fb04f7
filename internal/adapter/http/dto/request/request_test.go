package request

import "testing"

func TestPaymentRequest_ToCommand(t *testing.T) {
	r := PaymentRequest{Nonce: " cnon:1 ", OrderID: " o-1 ", Amount: 100, Currency: " usd ", ReferenceID: " ref ", LocationID: " L1 "}
	cmd := r.ToCommand()

	if cmd.SourceID != "cnon:1" || cmd.OrderID != "o-1" || cmd.LocationID != "L1" || cmd.ReferenceID != "ref" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if cmd.Amount.Amount != 100 || cmd.Amount.Currency != "USD" {
		t.Fatalf("unexpected amount: %+v", cmd.Amount)
	}
	if cmd.IdempotencyKey != "" {
		t.Fatalf("idempotency key must be generated downstream, got %q", cmd.IdempotencyKey)
	}
}

func TestOrderRequest_ToCommand(t *testing.T) {
	r := OrderRequest{
		LocationID: " L1 ",
		LineItems: []LineItemRequest{
			{Name: " Widget ", Amount: 500, Currency: "usd", Quantity: 2},
			{Name: "Gadget", Amount: 0, Quantity: 1},
		},
	}
	cmd := r.ToCommand()

	if cmd.LocationID != "L1" || len(cmd.LineItems) != 2 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	first := cmd.LineItems[0]
	if first.Name != "Widget" || first.Amount != 500 || first.Currency != "USD" || first.Quantity != 2 {
		t.Fatalf("unexpected first line item: %+v", first)
	}
	if cmd.LineItems[1].Currency != "" {
		t.Fatalf("empty currency must stay empty for defaulting, got %q", cmd.LineItems[1].Currency)
	}
}
