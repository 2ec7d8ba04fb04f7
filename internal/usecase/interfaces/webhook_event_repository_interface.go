package interfaces

import (
	"context"
	"square_gateway/internal/domain/entities"
)

//go:generate mockgen -source=webhook_event_repository_interface.go -destination=mocks/webhook_event_repository_mock.go -package=mock_interfaces

// IWebhookEventRepository records which webhook events were already received.
//
// MarkReceived returns false when a receipt with the same event id exists. Forget drops the
// receipt so a redelivery of the event is processed again.
type IWebhookEventRepository interface {
	MarkReceived(ctx context.Context, receipt entities.WebhookReceipt) (bool, error)
	Forget(ctx context.Context, eventID string) error
}
