package handlers

import (
	"errors"
	"log"
	"net/http"
	request "square_gateway/internal/adapter/http/dto/request"
	response "square_gateway/internal/adapter/http/dto/response"
	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase"
	"square_gateway/internal/usecase/interfaces"
	"square_gateway/pkg"

	"github.com/gin-gonic/gin"
)

const HeaderIdempotencyKey = "Idempotency-Key"

var (
	errInvalidRequest      = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errLocationsFailed     = pkg.NewDomainErrorSimple("LOCATION_LOOKUP_FAILED", "Failed to retrieve locations.", http.StatusInternalServerError)
	errPaymentFailed       = pkg.NewDomainErrorSimple("PAYMENT_FAILED", "Payment failed.", http.StatusInternalServerError)
	errOrderCreationFailed = pkg.NewDomainErrorSimple("ORDER_CREATION_FAILED", "Order creation failed.", http.StatusInternalServerError)
)

// SquareHandler serves the checkout page endpoints.
type SquareHandler struct {
	usecase usecase.ISquareUseCase
}

func NewSquareHandler(uc usecase.ISquareUseCase) *SquareHandler {
	return &SquareHandler{usecase: uc}
}

// GetLocationID returns the first location of the merchant account.
//
// @Summary      First location of the merchant
// @Tags         square
// @Produce      json
// @Success      200  {object}  response.LocationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Failure      503  {object}  pkg.HTTPError
// @Router       /api/get-location-id [get]
func (h *SquareHandler) GetLocationID(c *gin.Context) {
	log.Printf("[square][handler] get-location-id start")

	id, err := h.usecase.GetLocationID(c.Request.Context())
	if err != nil {
		log.Printf("[square][handler] get-location-id failed err=%v", err)
		appErr := mapSquareError(err, errLocationsFailed)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[square][handler] get-location-id success location_id=%s", id)

	c.JSON(http.StatusOK, response.FromLocationID(id))
}

// ProcessPayment charges the card nonce produced on the checkout page.
//
// @Summary      Charge a card nonce
// @Tags         square
// @Accept       json
// @Produce      json
// @Param        payment  body      request.PaymentRequest  true  "Payment"
// @Success      200      {object}  response.PaymentResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Failure      503      {object}  pkg.HTTPError
// @Router       /api/process-payment [post]
func (h *SquareHandler) ProcessPayment(c *gin.Context) {
	var payload request.PaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[square][handler] process-payment invalid payload err=%v", err)
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	log.Printf("[square][handler] process-payment start order_id=%s amount=%d", payload.OrderID, payload.Amount)

	res, err := h.usecase.ProcessPayment(c.Request.Context(), payload.ToCommand())
	if err != nil {
		log.Printf("[square][handler] process-payment failed order_id=%s err=%v", payload.OrderID, err)
		appErr := mapSquareError(err, errPaymentFailed)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[square][handler] process-payment success payment_id=%s status=%s", res.ID, res.Status)

	c.JSON(http.StatusOK, response.FromPaymentResult(res))
}

// CreateOrder creates a Square order from the cart line items.
//
// An optional Idempotency-Key header makes client retries safe: a retry after success
// replays the stored order, a retry while the first call is running gets 409.
//
// @Summary      Create a Square order
// @Tags         square
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Client idempotency key"
// @Param        order            body      request.OrderRequest  true   "Order"
// @Success      200              {object}  response.OrderResponse
// @Failure      400              {object}  pkg.HTTPError
// @Failure      409              {object}  pkg.HTTPError         "Idempotency-Key still in progress"
// @Failure      500              {object}  pkg.HTTPError
// @Failure      503              {object}  pkg.HTTPError
// @Router       /api/create-order [post]
func (h *SquareHandler) CreateOrder(c *gin.Context) {
	var payload request.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[square][handler] create-order invalid payload err=%v", err)
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	clientKey := c.GetHeader(HeaderIdempotencyKey)
	log.Printf("[square][handler] create-order start location_id=%s line_items=%d client_key=%q", payload.LocationID, len(payload.LineItems), clientKey)

	res, err := h.usecase.CreateOrder(c.Request.Context(), payload.ToCommand(), clientKey)
	if err != nil {
		log.Printf("[square][handler] create-order failed location_id=%s err=%v", payload.LocationID, err)
		appErr := mapSquareError(err, errOrderCreationFailed)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[square][handler] create-order success order_id=%s", res.ID)

	c.JSON(http.StatusOK, response.FromOrderResult(res))
}

// mapSquareError translates use case errors. upstream is the operation specific body
// used when Square itself rejected the call.
func mapSquareError(err error, upstream *pkg.AppError) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidNonce), errors.Is(err, usecase.ErrInvalidAmount), errors.Is(err, usecase.ErrInvalidCurrency),
		errors.Is(err, usecase.ErrInvalidLocationID), errors.Is(err, usecase.ErrInvalidLineItems):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrNoLocations):
		return pkg.NewDomainErrorSimple("LOCATION_NOT_FOUND", "No locations found.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDuplicateRequest):
		return pkg.NewDomainErrorSimple("DUPLICATE_REQUEST", "A request with this Idempotency-Key is still in progress", http.StatusConflict)
	case errors.Is(err, interfaces.ErrGatewayUnavailable):
		return pkg.NewDomainError("GATEWAY_UNAVAILABLE", "Payment provider temporarily unavailable", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainError("GATEWAY_NOT_CONFIGURED", "Payment provider not configured", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrUpstream):
		return upstreamAppError(err, upstream)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func upstreamAppError(err error, base *pkg.AppError) *pkg.AppError {
	appErr := pkg.NewDomainError(base.Code, base.Message, err, base.HTTPStatus)

	var pErr *entities.ProviderError
	if !errors.As(err, &pErr) || len(pErr.Errors) == 0 {
		return appErr
	}
	details := make([]pkg.ErrorDetail, 0, len(pErr.Errors))
	for _, d := range pErr.Errors {
		details = append(details, pkg.ErrorDetail{Category: d.Category, Code: d.Code, Detail: d.Detail, Field: d.Field})
	}
	return appErr.WithDetails(details...)
}
