package payments

import (
	"context"
	"log"
	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const MockLocationID = "mock-location"

// MockGateway is an in-process stand-in for Square, enabled with PAYMENT_GATEWAY_MOCK.
//
// It approves every payment and honors idempotency keys the way Square does: a repeated key
// returns the first result instead of creating a second resource.
type MockGateway struct {
	mu       sync.Mutex
	payments map[string]entities.PaymentResult
	orders   map[string]entities.OrderResult
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	log.Printf("[square][gateway] mock mode enabled")
	return &MockGateway{
		payments: map[string]entities.PaymentResult{},
		orders:   map[string]entities.OrderResult{},
	}
}

func (g *MockGateway) ListLocations(ctx context.Context) ([]entities.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, &entities.ProviderError{Message: err.Error()}
	}
	log.Printf("[square][gateway] mock list-locations")
	return []entities.Location{{ID: MockLocationID, Name: "Mock Location", Status: "ACTIVE"}}, nil
}

func (g *MockGateway) CreatePayment(ctx context.Context, cmd entities.PaymentCommand) (entities.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return entities.PaymentResult{}, &entities.ProviderError{Message: err.Error()}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if res, ok := g.payments[cmd.IdempotencyKey]; ok {
		log.Printf("[square][gateway] mock create-payment replay idempotency_key=%s payment_id=%s", cmd.IdempotencyKey, res.ID)
		return res, nil
	}
	if strings.Contains(cmd.SourceID, "declined") {
		return entities.PaymentResult{}, &entities.ProviderError{
			StatusCode: 402,
			Message:    "mock card declined",
			Errors: []entities.ProviderErrorDetail{
				{Category: "PAYMENT_METHOD_ERROR", Code: "GENERIC_DECLINE", Detail: "Authorization error: 'GENERIC_DECLINE'"},
			},
		}
	}

	res := entities.PaymentResult{
		ID:          uuid.NewString(),
		Status:      "COMPLETED",
		OrderID:     cmd.OrderID,
		ReferenceID: cmd.ReferenceID,
	}
	g.payments[cmd.IdempotencyKey] = res
	log.Printf("[square][gateway] mock create-payment success payment_id=%s status=%s", res.ID, res.Status)
	return res, nil
}

func (g *MockGateway) CreateOrder(ctx context.Context, cmd entities.OrderCommand) (entities.OrderResult, error) {
	if err := ctx.Err(); err != nil {
		return entities.OrderResult{}, &entities.ProviderError{Message: err.Error()}
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if res, ok := g.orders[cmd.IdempotencyKey]; ok {
		log.Printf("[square][gateway] mock create-order replay idempotency_key=%s order_id=%s", cmd.IdempotencyKey, res.ID)
		return res, nil
	}
	total, err := cmd.Total()
	if err != nil {
		return entities.OrderResult{}, &entities.ProviderError{
			StatusCode: 400,
			Message:    err.Error(),
			Errors:     []entities.ProviderErrorDetail{{Category: "INVALID_REQUEST_ERROR", Code: "INVALID_VALUE", Field: "order.line_items"}},
		}
	}

	res := entities.OrderResult{
		ID:         uuid.NewString(),
		LocationID: cmd.LocationID,
		State:      "OPEN",
		TotalMoney: total,
	}
	g.orders[cmd.IdempotencyKey] = res
	log.Printf("[square][gateway] mock create-order success order_id=%s total=%d %s", res.ID, total.Amount, total.Currency)
	return res, nil
}
