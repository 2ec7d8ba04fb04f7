package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoLocations          = errors.New("no locations found")
	ErrUpstream             = errors.New("square upstream error")
	ErrGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidNonce         = errors.New("invalid nonce")
	ErrInvalidAmount        = errors.New("invalid payment amount")
	ErrInvalidCurrency      = errors.New("invalid currency")
	ErrInvalidLocationID    = errors.New("invalid location_id")
	ErrInvalidLineItems     = errors.New("invalid line items")
	ErrDuplicateRequest     = errors.New("duplicate request")
)

const DefaultRequestTimeout = 15 * time.Second

//go:generate mockgen -destination=../adapter/http/handlers/mocks/square_usecase_mock.go -package=mocks square_gateway/internal/usecase ISquareUseCase

// ISquareUseCase is the gateway adapter in front of Square.
//
//   - GET  /api/get-location-id => GetLocationID()
//   - POST /api/process-payment => ProcessPayment()
//   - POST /api/create-order    => CreateOrder()
type ISquareUseCase interface {
	GetLocationID(ctx context.Context) (string, error)
	ProcessPayment(ctx context.Context, cmd entities.PaymentCommand) (entities.PaymentResult, error)
	CreateOrder(ctx context.Context, cmd entities.OrderCommand, clientKey string) (entities.OrderResult, error)
}

type SquareUseCase struct {
	gateway         interfaces.IPaymentGateway
	idempotency     interfaces.IIdempotencyStore
	timeout         time.Duration
	defaultCurrency string
	newKey          func() string
}

var _ ISquareUseCase = (*SquareUseCase)(nil)

// NewSquareUseCase wires the adapter. idempotency may be nil, in which case client
// Idempotency-Key headers are ignored.
func NewSquareUseCase(gateway interfaces.IPaymentGateway, idempotency interfaces.IIdempotencyStore, timeout time.Duration, defaultCurrency string) *SquareUseCase {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	defaultCurrency = strings.ToUpper(strings.TrimSpace(defaultCurrency))
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &SquareUseCase{
		gateway:         gateway,
		idempotency:     idempotency,
		timeout:         timeout,
		defaultCurrency: defaultCurrency,
		newKey:          uuid.NewString,
	}
}

func (u *SquareUseCase) GetLocationID(ctx context.Context) (string, error) {
	if u.gateway == nil {
		log.Printf("[square][usecase] gateway not configured")
		return "", ErrGatewayNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	log.Printf("[square][usecase] list-locations start")
	locations, err := u.gateway.ListLocations(ctx)
	if err != nil {
		logProviderFailure("list-locations", err)
		return "", upstreamError(err)
	}
	if len(locations) == 0 {
		log.Printf("[square][usecase] list-locations empty")
		return "", ErrNoLocations
	}
	log.Printf("[square][usecase] list-locations success count=%d location_id=%s", len(locations), locations[0].ID)
	return locations[0].ID, nil
}

func (u *SquareUseCase) ProcessPayment(ctx context.Context, cmd entities.PaymentCommand) (entities.PaymentResult, error) {
	cmd.SourceID = strings.TrimSpace(cmd.SourceID)
	cmd.OrderID = strings.TrimSpace(cmd.OrderID)
	cmd.LocationID = strings.TrimSpace(cmd.LocationID)
	cmd.ReferenceID = strings.TrimSpace(cmd.ReferenceID)
	log.Printf("[square][usecase] process-payment start order_id=%q amount=%d currency=%q", cmd.OrderID, cmd.Amount.Amount, cmd.Amount.Currency)

	if cmd.SourceID == "" {
		log.Printf("[square][usecase] invalid nonce (empty)")
		return entities.PaymentResult{}, ErrInvalidNonce
	}
	if cmd.Amount.Amount <= 0 {
		log.Printf("[square][usecase] invalid amount=%d", cmd.Amount.Amount)
		return entities.PaymentResult{}, ErrInvalidAmount
	}
	currency, err := u.normalizeCurrency(cmd.Amount.Currency)
	if err != nil {
		log.Printf("[square][usecase] invalid currency=%q", cmd.Amount.Currency)
		return entities.PaymentResult{}, err
	}
	cmd.Amount.Currency = currency
	if u.gateway == nil {
		log.Printf("[square][usecase] gateway not configured")
		return entities.PaymentResult{}, ErrGatewayNotConfigured
	}

	if cmd.ReferenceID == "" {
		cmd.ReferenceID = u.newKey()
	}
	cmd.IdempotencyKey = u.newKey()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.gateway.CreatePayment(ctx, cmd)
	if err != nil {
		logProviderFailure("process-payment", err)
		return entities.PaymentResult{}, upstreamError(err)
	}
	if res.ReferenceID == "" {
		res.ReferenceID = cmd.ReferenceID
	}
	log.Printf("[square][usecase] process-payment success payment_id=%s status=%s reference_id=%s idempotency_key=%s", res.ID, res.Status, res.ReferenceID, cmd.IdempotencyKey)
	return res, nil
}

func (u *SquareUseCase) CreateOrder(ctx context.Context, cmd entities.OrderCommand, clientKey string) (entities.OrderResult, error) {
	cmd.LocationID = strings.TrimSpace(cmd.LocationID)
	clientKey = strings.TrimSpace(clientKey)
	log.Printf("[square][usecase] create-order start location_id=%q line_items=%d", cmd.LocationID, len(cmd.LineItems))

	if cmd.LocationID == "" {
		log.Printf("[square][usecase] invalid location_id (empty)")
		return entities.OrderResult{}, ErrInvalidLocationID
	}
	items, err := u.normalizeLineItems(cmd.LineItems)
	if err != nil {
		log.Printf("[square][usecase] invalid line items err=%v", err)
		return entities.OrderResult{}, err
	}
	cmd.LineItems = items
	if u.gateway == nil {
		log.Printf("[square][usecase] gateway not configured")
		return entities.OrderResult{}, ErrGatewayNotConfigured
	}

	if clientKey != "" && u.idempotency != nil {
		acquired, existing, err := u.idempotency.Acquire(ctx, clientKey)
		switch {
		case err != nil:
			// Store outage must not block checkout.
			log.Printf("[square][usecase] idempotency store acquire failed client_key=%s err=%v", clientKey, err)
			clientKey = ""
		case !acquired && existing.Replayable():
			log.Printf("[square][usecase] create-order replayed client_key=%s order_id=%s", clientKey, existing.Order.ID)
			return *existing.Order, nil
		case !acquired:
			log.Printf("[square][usecase] duplicate create-order client_key=%s status=%s", clientKey, existing.Status)
			return entities.OrderResult{}, ErrDuplicateRequest
		}
	} else {
		clientKey = ""
	}

	cmd.IdempotencyKey = u.newKey()

	callCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	res, err := u.gateway.CreateOrder(callCtx, cmd)
	if err != nil {
		logProviderFailure("create-order", err)
		if clientKey != "" {
			if relErr := u.idempotency.Release(ctx, clientKey); relErr != nil {
				log.Printf("[square][usecase] idempotency store release failed client_key=%s err=%v", clientKey, relErr)
			}
		}
		return entities.OrderResult{}, upstreamError(err)
	}
	res.IdempotencyKey = cmd.IdempotencyKey
	if clientKey != "" {
		if cErr := u.idempotency.Complete(ctx, clientKey, res); cErr != nil {
			log.Printf("[square][usecase] idempotency store complete failed client_key=%s err=%v", clientKey, cErr)
		}
	}
	log.Printf("[square][usecase] create-order success order_id=%s state=%s idempotency_key=%s", res.ID, res.State, cmd.IdempotencyKey)
	return res, nil
}

func (u *SquareUseCase) normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return u.defaultCurrency, nil
	}
	if !entities.IsSupportedCurrency(currency) {
		return "", ErrInvalidCurrency
	}
	return currency, nil
}

func (u *SquareUseCase) normalizeLineItems(items []entities.LineItem) ([]entities.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", ErrInvalidLineItems)
	}
	out := make([]entities.LineItem, 0, len(items))
	for i, li := range items {
		li.Name = strings.TrimSpace(li.Name)
		if li.Name == "" {
			return nil, fmt.Errorf("%w: line item %d has no name", ErrInvalidLineItems, i)
		}
		if li.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line item %d quantity must be positive", ErrInvalidLineItems, i)
		}
		if li.Amount < 0 {
			return nil, fmt.Errorf("%w: line item %d amount must not be negative", ErrInvalidLineItems, i)
		}
		currency, err := u.normalizeCurrency(li.Currency)
		if err != nil {
			return nil, fmt.Errorf("%w: line item %d: %w", ErrInvalidLineItems, i, err)
		}
		li.Currency = currency
		out = append(out, li)
	}
	return out, nil
}

func upstreamError(err error) error {
	if errors.Is(err, interfaces.ErrGatewayUnavailable) {
		return err
	}
	if errors.Is(err, entities.ErrUnsupportedCurrency) {
		return fmt.Errorf("%w: %w", ErrInvalidCurrency, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

func logProviderFailure(op string, err error) {
	var pErr *entities.ProviderError
	if !errors.As(err, &pErr) {
		log.Printf("[square][usecase] %s failed err=%v", op, err)
		return
	}
	log.Printf("[square][usecase] %s failed http_status=%d message=%q", op, pErr.StatusCode, pErr.Message)
	for _, d := range pErr.Errors {
		log.Printf("[square][usecase] %s error detail=%q category=%s code=%s field=%s", op, d.Detail, d.Category, d.Code, d.Field)
	}
}
