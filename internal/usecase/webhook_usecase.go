package usecase

import (
	"context"
	"encoding/json"
	"log"
	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"
	"time"
)

const DefaultWebhookEventTTL = 72 * time.Hour

//go:generate mockgen -destination=../adapter/http/handlers/mocks/webhook_usecase_mock.go -package=mocks square_gateway/internal/usecase IWebhookUseCase

// IWebhookUseCase ingests Square webhook notifications.
//
// Receive never fails: Square retries any non-2xx delivery, and a body we cannot parse
// will not become parseable on retry.
type IWebhookUseCase interface {
	Receive(ctx context.Context, raw []byte) entities.WebhookAck
}

type WebhookUseCase struct {
	repo      interfaces.IWebhookEventRepository
	publisher interfaces.IWebhookEventPublisher
	eventTTL  time.Duration
	now       func() time.Time
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

// NewWebhookUseCase wires the receiver. repo and publisher are optional.
func NewWebhookUseCase(repo interfaces.IWebhookEventRepository, publisher interfaces.IWebhookEventPublisher, eventTTL time.Duration) *WebhookUseCase {
	if eventTTL <= 0 {
		eventTTL = DefaultWebhookEventTTL
	}
	return &WebhookUseCase{repo: repo, publisher: publisher, eventTTL: eventTTL, now: time.Now}
}

func (u *WebhookUseCase) Receive(ctx context.Context, raw []byte) entities.WebhookAck {
	log.Printf("[webhook][usecase] receive start payload_len=%d", len(raw))

	var payload entities.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("[webhook][usecase] payload unmarshal failed err=%v", err)
		return entities.WebhookAck{}
	}
	ack := entities.WebhookAck{EventID: payload.EventID, Type: payload.Type, Parsed: true}
	log.Printf("[webhook][usecase] received event_id=%s type=%s merchant_id=%s created_at=%s data_type=%s data_id=%s",
		payload.EventID, payload.Type, payload.MerchantID, payload.CreatedAt, payload.Data.Type, payload.Data.ID)
	logEventBody(payload)

	recorded := false
	if payload.EventID != "" && u.repo != nil {
		now := u.now().UTC()
		fresh, err := u.repo.MarkReceived(ctx, entities.WebhookReceipt{
			EventID:    payload.EventID,
			Type:       payload.Type,
			MerchantID: payload.MerchantID,
			ReceivedAt: now,
			ExpiresAt:  now.Add(u.eventTTL),
		})
		switch {
		case err != nil:
			log.Printf("[webhook][usecase] dedupe check failed event_id=%s err=%v", payload.EventID, err)
		case !fresh:
			log.Printf("[webhook][usecase] duplicate delivery event_id=%s type=%s", payload.EventID, payload.Type)
			ack.Duplicate = true
			return ack
		default:
			recorded = true
		}
	}

	if u.publisher != nil {
		if err := u.publisher.Publish(ctx, payload); err != nil {
			log.Printf("[webhook][usecase] publish failed event_id=%s type=%s err=%v", payload.EventID, payload.Type, err)
			// Drop the marker so a redelivery of this event is published.
			if recorded {
				u.forget(ctx, payload.EventID)
			}
		} else {
			ack.Published = true
		}
	}

	log.Printf("[webhook][usecase] receive success event_id=%s type=%s published=%t", payload.EventID, payload.Type, ack.Published)
	return ack
}

func (u *WebhookUseCase) forget(ctx context.Context, eventID string) {
	if err := u.repo.Forget(ctx, eventID); err != nil {
		log.Printf("[webhook][usecase] dedupe marker cleanup failed event_id=%s err=%v", eventID, err)
		return
	}
	log.Printf("[webhook][usecase] dedupe marker removed event_id=%s", eventID)
}

func logEventBody(p entities.WebhookPayload) {
	if evt, ok := p.OrderCreated(); ok {
		log.Printf("[webhook][usecase] order_created order_id=%s location_id=%s state=%s version=%d", evt.OrderID, evt.LocationID, evt.State, evt.Version)
		return
	}
	if evt, ok := p.OrderUpdated(); ok {
		log.Printf("[webhook][usecase] order_updated order_id=%s location_id=%s state=%s version=%d", evt.OrderID, evt.LocationID, evt.State, evt.Version)
		return
	}
	if evt, ok := p.Payment(); ok {
		log.Printf("[webhook][usecase] payment payment_id=%s order_id=%s status=%s amount=%d currency=%s", evt.ID, evt.OrderID, evt.Status, evt.AmountMoney.Amount, evt.AmountMoney.Currency)
		return
	}
	log.Printf("[webhook][usecase] unrecognized data.object shape type=%s", p.Type)
}
