package interfaces

import (
	"context"
	"square_gateway/internal/domain/entities"
)

//go:generate mockgen -source=idempotency_store_interface.go -destination=mocks/idempotency_store_mock.go -package=mock_interfaces

// IIdempotencyStore tracks client supplied Idempotency-Key headers.
//
// Acquire returns false together with the existing record when the key is already in
// progress or completed. Complete stores the order so later retries can replay it.
type IIdempotencyStore interface {
	Acquire(ctx context.Context, key string) (bool, entities.IdempotencyRecord, error)
	Complete(ctx context.Context, key string, order entities.OrderResult) error
	Release(ctx context.Context, key string) error
}
