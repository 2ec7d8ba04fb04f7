package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"square_gateway/internal/domain/entities"
	"square_gateway/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	WebhookExchangeName = "square.webhooks"
	routingKeyPrefix    = "webhook."
	unknownEventType    = "unknown"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var errPublisherClosed = errors.New("webhook publisher closed")

// amqpSession is one connection plus the channel publishes go through.
// closed yields once when the broker drops either of them.
type amqpSession struct {
	channel amqpPublisher
	closed  <-chan *amqp.Error
	close   func() error
}

// RabbitMQWebhookPublisher fans Square webhook events out on a topic exchange.
// Consumers bind with patterns such as "webhook.order.*" or "webhook.payment.updated".
//
// A dropped connection is redialed on the next Publish.
type RabbitMQWebhookPublisher struct {
	exchange string
	dial     func() (*amqpSession, error)

	mu       sync.Mutex
	session  *amqpSession
	shutdown bool
}

var _ interfaces.IWebhookEventPublisher = (*RabbitMQWebhookPublisher)(nil)

func NewRabbitMQWebhookPublisher(amqpURL string) (*RabbitMQWebhookPublisher, error) {
	p := newRabbitMQWebhookPublisher(func() (*amqpSession, error) {
		return dialAMQP(amqpURL, WebhookExchangeName)
	})
	if _, err := p.current(); err != nil {
		return nil, err
	}
	return p, nil
}

func newRabbitMQWebhookPublisher(dial func() (*amqpSession, error)) *RabbitMQWebhookPublisher {
	return &RabbitMQWebhookPublisher{exchange: WebhookExchangeName, dial: dial}
}

func dialAMQP(amqpURL, exchange string) (*amqpSession, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
	chanClosed := channel.NotifyClose(make(chan *amqp.Error, 1))
	closed := make(chan *amqp.Error, 1)
	go func() {
		select {
		case e := <-connClosed:
			closed <- e
		case e := <-chanClosed:
			closed <- e
		}
	}()

	return &amqpSession{
		channel: channel,
		closed:  closed,
		close: func() error {
			channel.Close()
			return conn.Close()
		},
	}, nil
}

func (p *RabbitMQWebhookPublisher) Publish(ctx context.Context, payload entities.WebhookPayload) error {
	msg, err := buildWebhookMessage(payload, time.Now())
	if err != nil {
		return err
	}
	key := RoutingKey(payload.Type)

	s, err := p.current()
	if err != nil {
		return err
	}
	if err := s.channel.PublishWithContext(ctx, p.exchange, key, false, false, msg); err != nil {
		p.invalidate(s)
		return fmt.Errorf("failed to publish message: %w", err)
	}
	log.Printf("[webhook][messaging] published event_id=%s routing_key=%s", payload.EventID, key)
	return nil
}

func (p *RabbitMQWebhookPublisher) Close() error {
	p.mu.Lock()
	p.shutdown = true
	s := p.session
	p.session = nil
	p.mu.Unlock()

	if s != nil {
		return s.close()
	}
	return nil
}

func (p *RabbitMQWebhookPublisher) current() (*amqpSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return nil, errPublisherClosed
	}
	if p.session != nil {
		return p.session, nil
	}

	s, err := p.dial()
	if err != nil {
		log.Printf("[webhook][messaging] connect failed err=%v", err)
		return nil, err
	}
	p.session = s
	go p.watch(s)
	log.Printf("[webhook][messaging] connected exchange=%s", p.exchange)
	return s, nil
}

func (p *RabbitMQWebhookPublisher) watch(s *amqpSession) {
	if amqpErr, ok := <-s.closed; ok && amqpErr != nil {
		log.Printf("[webhook][messaging] connection lost code=%d reason=%s", amqpErr.Code, amqpErr.Reason)
	}
	p.invalidate(s)
}

// invalidate drops s if it is still the active session.
func (p *RabbitMQWebhookPublisher) invalidate(s *amqpSession) {
	p.mu.Lock()
	if p.session != s {
		p.mu.Unlock()
		return
	}
	p.session = nil
	p.mu.Unlock()

	if err := s.close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		log.Printf("[webhook][messaging] close stale connection err=%v", err)
	}
}

// RoutingKey maps a Square event type ("order.created") to "webhook.order.created".
func RoutingKey(eventType string) string {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	if eventType == "" {
		eventType = unknownEventType
	}
	return routingKeyPrefix + eventType
}

func buildWebhookMessage(payload entities.WebhookPayload, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal message: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    payload.EventID,
		Type:         payload.Type,
		Timestamp:    now,
		Body:         body,
		Headers: amqp.Table{
			"merchant_id": payload.MerchantID,
		},
	}, nil
}
