package request

import (
	"square_gateway/internal/domain/entities"
	"strings"
)

// LineItemRequest carries the unit price in minor units (cents).
type LineItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Amount   int64  `json:"amount" binding:"gte=0"`
	Currency string `json:"currency"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// OrderRequest is the body of POST /api/create-order.
type OrderRequest struct {
	LocationID string            `json:"locationId" binding:"required"`
	LineItems  []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

func (r OrderRequest) ToCommand() entities.OrderCommand {
	items := make([]entities.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, entities.LineItem{
			Name:     strings.TrimSpace(li.Name),
			Amount:   li.Amount,
			Currency: strings.ToUpper(strings.TrimSpace(li.Currency)),
			Quantity: li.Quantity,
		})
	}
	return entities.OrderCommand{
		LocationID: strings.TrimSpace(r.LocationID),
		LineItems:  items,
	}
}
