package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

// Config is read once at startup and never mutated afterwards.
//
// Optional integrations (Redis, DynamoDB, RabbitMQ) are disabled when their address or
// table is empty.
type Config struct {
	Port string

	SquareAccessToken            string
	SquareEnvironment            string
	SquareWebhookSignatureKey    string
	SquareWebhookNotificationURL string
	DefaultCurrency              string
	PaymentGatewayMock           bool

	RequestTimeout          time.Duration
	UpstreamMaxRetries      int
	BreakerFailureThreshold int
	BreakerOpenTimeout      time.Duration

	CORSAllowedOrigins []string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	WebhookEventsTable string
	WebhookEventTTL    time.Duration

	RabbitMQURL string
}

// Load builds a Config from environment variables.
//
// Supported env vars:
//   - PORT (default: 8080)
//   - SQUARE_ACCESS_TOKEN
//   - squareEnvironment or SQUARE_ENVIRONMENT ("production"; anything else is sandbox)
//   - SQUARE_WEBHOOK_SIGNATURE_KEY, SQUARE_WEBHOOK_NOTIFICATION_URL
//   - DEFAULT_CURRENCY (default: USD)
//   - PAYMENT_GATEWAY_MOCK / SQUARE_MOCK
//   - REQUEST_TIMEOUT, UPSTREAM_MAX_RETRIES, BREAKER_FAILURE_THRESHOLD, BREAKER_OPEN_TIMEOUT
//   - CORS_ALLOWED_ORIGINS (comma separated)
//   - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, IDEMPOTENCY_TTL
//   - WEBHOOK_EVENTS_TABLE, WEBHOOK_EVENT_TTL
//   - RABBITMQ_URL
func Load() Config {
	return Config{
		Port: getenvDefault("PORT", "8080"),

		SquareAccessToken:            strings.TrimSpace(os.Getenv("SQUARE_ACCESS_TOKEN")),
		SquareEnvironment:            normalizeEnvironment(firstNonEmpty(os.Getenv("squareEnvironment"), os.Getenv("SQUARE_ENVIRONMENT"))),
		SquareWebhookSignatureKey:    os.Getenv("SQUARE_WEBHOOK_SIGNATURE_KEY"),
		SquareWebhookNotificationURL: os.Getenv("SQUARE_WEBHOOK_NOTIFICATION_URL"),
		DefaultCurrency:              strings.ToUpper(getenvDefault("DEFAULT_CURRENCY", "USD")),
		PaymentGatewayMock:           isTruthy(os.Getenv("PAYMENT_GATEWAY_MOCK")) || isTruthy(os.Getenv("SQUARE_MOCK")),

		RequestTimeout:          getenvDuration("REQUEST_TIMEOUT", 15*time.Second),
		UpstreamMaxRetries:      getenvInt("UPSTREAM_MAX_RETRIES", 2),
		BreakerFailureThreshold: getenvInt("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerOpenTimeout:      getenvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),

		CORSAllowedOrigins: splitList(getenvDefault("CORS_ALLOWED_ORIGINS", "https://127.0.0.1:4200")),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getenvInt("REDIS_DB", 0),
		IdempotencyTTL: getenvDuration("IDEMPOTENCY_TTL", 24*time.Hour),

		WebhookEventsTable: os.Getenv("WEBHOOK_EVENTS_TABLE"),
		WebhookEventTTL:    getenvDuration("WEBHOOK_EVENT_TTL", 72*time.Hour),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
	}
}

func (c Config) IsProduction() bool {
	return c.SquareEnvironment == EnvironmentProduction
}

func normalizeEnvironment(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), EnvironmentProduction) {
		return EnvironmentProduction
	}
	return EnvironmentSandbox
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("[config] invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
