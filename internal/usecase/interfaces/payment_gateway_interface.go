package interfaces

import (
	"context"
	"errors"
	"square_gateway/internal/domain/entities"
)

// ErrGatewayUnavailable is returned without calling Square while the circuit breaker is open.
var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/payment_gateway_mock.go -package=mock_interfaces

// IPaymentGateway abstracts the Square APIs this service fronts (locations, payments, orders).
//
// Implementations return *entities.ProviderError for upstream failures so callers can log
// status/category/code without knowing the SDK.
type IPaymentGateway interface {
	ListLocations(ctx context.Context) ([]entities.Location, error)
	CreatePayment(ctx context.Context, cmd entities.PaymentCommand) (entities.PaymentResult, error)
	CreateOrder(ctx context.Context, cmd entities.OrderCommand) (entities.OrderResult, error)
}
