package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// ResilienceSettings bounds how hard the adapter pushes on a failing Square.
type ResilienceSettings struct {
	MaxRetries       int
	InitialBackoff   time.Duration
	MaxBackoff       time.Duration
	FailureThreshold int
	OpenTimeout      time.Duration
}

func (s ResilienceSettings) withDefaults() ResilienceSettings {
	if s.MaxRetries < 0 {
		s.MaxRetries = 0
	}
	if s.InitialBackoff <= 0 {
		s.InitialBackoff = 200 * time.Millisecond
	}
	if s.MaxBackoff <= 0 {
		s.MaxBackoff = 2 * time.Second
	}
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	return s
}

// ResilientGateway decorates another gateway with bounded retries and a circuit breaker.
//
// Retries resend the exact same command, so the idempotency key chosen by the caller is
// reused and Square deduplicates the write. Only transient failures (transport, 429, 5xx)
// are retried or counted against the breaker.
type ResilientGateway struct {
	next     interfaces.IPaymentGateway
	breaker  *gobreaker.CircuitBreaker
	settings ResilienceSettings
}

var _ interfaces.IPaymentGateway = (*ResilientGateway)(nil)

func NewResilientGateway(next interfaces.IPaymentGateway, settings ResilienceSettings) *ResilientGateway {
	settings = settings.withDefaults()
	threshold := uint32(settings.FailureThreshold)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "square",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[square][breaker] state change name=%s from=%s to=%s", name, from, to)
		},
	})
	return &ResilientGateway{next: next, breaker: breaker, settings: settings}
}

func (g *ResilientGateway) ListLocations(ctx context.Context) ([]entities.Location, error) {
	return execute(ctx, g, "list-locations", g.next.ListLocations)
}

func (g *ResilientGateway) CreatePayment(ctx context.Context, cmd entities.PaymentCommand) (entities.PaymentResult, error) {
	return execute(ctx, g, "create-payment", func(ctx context.Context) (entities.PaymentResult, error) {
		return g.next.CreatePayment(ctx, cmd)
	})
}

func (g *ResilientGateway) CreateOrder(ctx context.Context, cmd entities.OrderCommand) (entities.OrderResult, error) {
	return execute(ctx, g, "create-order", func(ctx context.Context) (entities.OrderResult, error) {
		return g.next.CreateOrder(ctx, cmd)
	})
}

// State exposes the breaker state for health reporting.
func (g *ResilientGateway) State() string {
	return g.breaker.State().String()
}

func execute[T any](ctx context.Context, g *ResilientGateway, op string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	attempt := 0

	operation := func() error {
		attempt++
		res, err := g.breaker.Execute(func() (interface{}, error) {
			return fn(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				log.Printf("[square][breaker] %s rejected attempt=%d err=%v", op, attempt, err)
				return backoff.Permanent(fmt.Errorf("%w: %w", interfaces.ErrGatewayUnavailable, err))
			}
			if !isTransient(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			log.Printf("[square][retry] %s transient failure attempt=%d err=%v", op, attempt, err)
			return err
		}
		out, _ = res.(T)
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.settings.InitialBackoff
	policy.MaxInterval = g.settings.MaxBackoff
	policy.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(g.settings.MaxRetries)), ctx))
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// isTransient only trusts errors the gateway normalized. Anything else (local validation,
// mapping failures) will fail the same way on every attempt.
func isTransient(err error) bool {
	var pErr *entities.ProviderError
	if errors.As(err, &pErr) {
		return pErr.Transient()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
