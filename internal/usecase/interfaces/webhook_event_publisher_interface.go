package interfaces

import (
	"context"
	"square_gateway/internal/domain/entities"
)

//go:generate mockgen -source=webhook_event_publisher_interface.go -destination=mocks/webhook_event_publisher_mock.go -package=mock_interfaces

// IWebhookEventPublisher forwards accepted webhook events to downstream consumers.
type IWebhookEventPublisher interface {
	Publish(ctx context.Context, payload entities.WebhookPayload) error
}
