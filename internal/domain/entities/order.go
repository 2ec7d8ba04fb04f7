package entities

import "errors"

var ErrMixedCurrencies = errors.New("line items use different currencies")

// LineItem is one order line priced per unit.
type LineItem struct {
	Name     string
	Amount   int64
	Currency string
	Quantity int
}

// OrderCommand is everything the gateway needs to create one order.
type OrderCommand struct {
	LocationID     string
	LineItems      []LineItem
	IdempotencyKey string
}

// Total sums unit price times quantity over all line items.
func (c OrderCommand) Total() (Money, error) {
	var total Money
	for i, li := range c.LineItems {
		if i == 0 {
			total.Currency = li.Currency
		} else if li.Currency != total.Currency {
			return Money{}, ErrMixedCurrencies
		}
		total.Amount += li.Amount * int64(li.Quantity)
	}
	return total, nil
}

type OrderResult struct {
	ID             string `json:"id"`
	LocationID     string `json:"location_id,omitempty"`
	State          string `json:"state,omitempty"`
	TotalMoney     Money  `json:"total_money"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}
