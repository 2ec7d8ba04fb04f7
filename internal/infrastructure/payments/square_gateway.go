package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"
	"strconv"
	"strings"

	square "github.com/square/square-go-sdk"
	squareclient "github.com/square/square-go-sdk/client"
	"github.com/square/square-go-sdk/core"
	"github.com/square/square-go-sdk/option"
)

var ErrMissingSquareAccessToken = errors.New("missing SQUARE_ACCESS_TOKEN")
var ErrSquareGatewayNotConfigured = errors.New("square gateway not configured")

// SquareGateway talks to the Square Locations, Payments and Orders APIs through the SDK.
type SquareGateway struct {
	client *squareclient.Client
}

var _ interfaces.IPaymentGateway = (*SquareGateway)(nil)

func NewSquareGateway(accessToken string, production bool) (*SquareGateway, error) {
	if accessToken == "" {
		log.Printf("[square][gateway] missing SQUARE_ACCESS_TOKEN")
		return nil, ErrMissingSquareAccessToken
	}

	baseURL := square.Environments.Sandbox
	env := "sandbox"
	if production {
		baseURL = square.Environments.Production
		env = "production"
	}
	client := squareclient.NewClient(
		option.WithToken(accessToken),
		option.WithBaseURL(baseURL),
	)
	log.Printf("[square][gateway] Square client initialized environment=%s", env)

	return &SquareGateway{client: client}, nil
}

func (g *SquareGateway) ListLocations(ctx context.Context) ([]entities.Location, error) {
	if g == nil || g.client == nil {
		return nil, ErrSquareGatewayNotConfigured
	}
	log.Printf("[square][gateway] list-locations start")

	resp, err := g.client.Locations.List(ctx)
	if err != nil {
		log.Printf("[square][gateway] sdk list-locations failed err=%v", err)
		return nil, toProviderError(err)
	}
	if len(resp.Errors) > 0 {
		return nil, responseErrors(resp.Errors)
	}

	out := make([]entities.Location, 0, len(resp.Locations))
	for _, loc := range resp.Locations {
		if loc == nil {
			continue
		}
		out = append(out, entities.Location{
			ID:     deref(loc.ID),
			Name:   deref(loc.Name),
			Status: string(deref(loc.Status)),
		})
	}
	log.Printf("[square][gateway] list-locations success count=%d", len(out))
	return out, nil
}

func (g *SquareGateway) CreatePayment(ctx context.Context, cmd entities.PaymentCommand) (entities.PaymentResult, error) {
	if g == nil || g.client == nil {
		return entities.PaymentResult{}, ErrSquareGatewayNotConfigured
	}
	money, err := toSquareMoney(cmd.Amount)
	if err != nil {
		return entities.PaymentResult{}, err
	}
	log.Printf("[square][gateway] create-payment start order_id=%s amount=%d currency=%s idempotency_key=%s", cmd.OrderID, cmd.Amount.Amount, cmd.Amount.Currency, cmd.IdempotencyKey)

	resp, err := g.client.Payments.Create(ctx, &square.CreatePaymentRequest{
		SourceID:       cmd.SourceID,
		IdempotencyKey: cmd.IdempotencyKey,
		AmountMoney:    money,
		OrderID:        optional(cmd.OrderID),
		LocationID:     optional(cmd.LocationID),
		ReferenceID:    optional(cmd.ReferenceID),
	})
	if err != nil {
		log.Printf("[square][gateway] sdk create-payment failed err=%v", err)
		return entities.PaymentResult{}, toProviderError(err)
	}
	if len(resp.Errors) > 0 {
		return entities.PaymentResult{}, responseErrors(resp.Errors)
	}
	if resp.Payment == nil {
		return entities.PaymentResult{}, &entities.ProviderError{StatusCode: http.StatusOK, Message: "response without payment"}
	}

	p := resp.Payment
	res := entities.PaymentResult{
		ID:          deref(p.ID),
		Status:      deref(p.Status),
		OrderID:     deref(p.OrderID),
		ReferenceID: deref(p.ReferenceID),
		ReceiptURL:  deref(p.ReceiptURL),
	}
	log.Printf("[square][gateway] create-payment success payment_id=%s status=%s", res.ID, res.Status)
	return res, nil
}

func (g *SquareGateway) CreateOrder(ctx context.Context, cmd entities.OrderCommand) (entities.OrderResult, error) {
	if g == nil || g.client == nil {
		return entities.OrderResult{}, ErrSquareGatewayNotConfigured
	}
	items, err := toSquareLineItems(cmd.LineItems)
	if err != nil {
		return entities.OrderResult{}, err
	}
	log.Printf("[square][gateway] create-order start location_id=%s line_items=%d idempotency_key=%s", cmd.LocationID, len(items), cmd.IdempotencyKey)

	resp, err := g.client.Orders.Create(ctx, &square.CreateOrderRequest{
		Order: &square.Order{
			LocationID: cmd.LocationID,
			LineItems:  items,
		},
		IdempotencyKey: square.String(cmd.IdempotencyKey),
	})
	if err != nil {
		log.Printf("[square][gateway] sdk create-order failed err=%v", err)
		return entities.OrderResult{}, toProviderError(err)
	}
	if len(resp.Errors) > 0 {
		return entities.OrderResult{}, responseErrors(resp.Errors)
	}
	if resp.Order == nil {
		return entities.OrderResult{}, &entities.ProviderError{StatusCode: http.StatusOK, Message: "response without order"}
	}

	o := resp.Order
	res := entities.OrderResult{
		ID:         deref(o.ID),
		LocationID: o.LocationID,
		State:      string(deref(o.State)),
		TotalMoney: fromSquareMoney(o.TotalMoney),
	}
	log.Printf("[square][gateway] create-order success order_id=%s state=%s", res.ID, res.State)
	return res, nil
}

func toSquareMoney(m entities.Money) (*square.Money, error) {
	currency, err := square.NewCurrencyFromString(m.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrUnsupportedCurrency, err)
	}
	return &square.Money{
		Amount:   square.Int64(m.Amount),
		Currency: currency.Ptr(),
	}, nil
}

func fromSquareMoney(m *square.Money) entities.Money {
	if m == nil {
		return entities.Money{}
	}
	return entities.Money{Amount: deref(m.Amount), Currency: string(deref(m.Currency))}
}

// toSquareLineItems prices each item per unit; Square multiplies by quantity itself.
func toSquareLineItems(items []entities.LineItem) ([]*square.OrderLineItem, error) {
	out := make([]*square.OrderLineItem, 0, len(items))
	for _, li := range items {
		money, err := toSquareMoney(entities.Money{Amount: li.Amount, Currency: li.Currency})
		if err != nil {
			return nil, err
		}
		out = append(out, &square.OrderLineItem{
			Name:           square.String(li.Name),
			Quantity:       strconv.Itoa(li.Quantity),
			BasePriceMoney: money,
		})
	}
	return out, nil
}

func responseErrors(errs []*square.Error) *entities.ProviderError {
	pe := &entities.ProviderError{StatusCode: http.StatusOK, Message: "errors in response body"}
	for _, e := range errs {
		if e == nil {
			continue
		}
		pe.Errors = append(pe.Errors, entities.ProviderErrorDetail{
			Category: string(e.Category),
			Code:     string(e.Code),
			Detail:   deref(e.Detail),
			Field:    deref(e.Field),
		})
	}
	return pe
}

// toProviderError normalizes SDK and transport errors. Square error bodies look like
// {"errors":[{"category":"...","code":"...","detail":"..."}]} and the SDK embeds them in
// the error message prefixed with the HTTP status.
func toProviderError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &entities.ProviderError{Message: err.Error()}
	}

	pe := &entities.ProviderError{Message: err.Error()}
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		pe.StatusCode = apiErr.StatusCode
	} else {
		pe.StatusCode = leadingStatus(err.Error())
	}
	pe.Errors = parseErrorBody(err.Error())
	return pe
}

func parseErrorBody(msg string) []entities.ProviderErrorDetail {
	start := strings.Index(msg, "{")
	if start < 0 {
		return nil
	}
	var body struct {
		Errors []entities.ProviderErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal([]byte(msg[start:]), &body); err != nil {
		return nil
	}
	return body.Errors
}

func leadingStatus(msg string) int {
	head, _, ok := strings.Cut(msg, ":")
	if !ok {
		return 0
	}
	code, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || code < 100 || code > 599 {
		return 0
	}
	return code
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return square.String(s)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
