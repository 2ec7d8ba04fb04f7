package entities

const (
	IdempotencyInProgress = "IN_PROGRESS"
	IdempotencyCompleted  = "COMPLETED"
)

// IdempotencyRecord is what a client Idempotency-Key points to. Order is set once the
// request that claimed the key succeeded.
type IdempotencyRecord struct {
	Status string       `json:"status"`
	Order  *OrderResult `json:"order,omitempty"`
}

// Replayable reports whether the record holds a finished order that can be returned as is.
func (r IdempotencyRecord) Replayable() bool {
	return r.Status == IdempotencyCompleted && r.Order != nil
}
