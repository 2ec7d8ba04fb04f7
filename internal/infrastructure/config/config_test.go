package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SQUARE_ACCESS_TOKEN", "squareEnvironment", "SQUARE_ENVIRONMENT",
		"SQUARE_WEBHOOK_SIGNATURE_KEY", "SQUARE_WEBHOOK_NOTIFICATION_URL", "DEFAULT_CURRENCY",
		"PAYMENT_GATEWAY_MOCK", "SQUARE_MOCK", "REQUEST_TIMEOUT", "UPSTREAM_MAX_RETRIES",
		"BREAKER_FAILURE_THRESHOLD", "BREAKER_OPEN_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "IDEMPOTENCY_TTL",
		"WEBHOOK_EVENTS_TABLE", "WEBHOOK_EVENT_TTL", "RABBITMQ_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.SquareEnvironment != EnvironmentSandbox || cfg.IsProduction() {
		t.Fatalf("expected sandbox, got %q", cfg.SquareEnvironment)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Fatalf("expected USD, got %q", cfg.DefaultCurrency)
	}
	if cfg.RequestTimeout != 15*time.Second || cfg.UpstreamMaxRetries != 2 {
		t.Fatalf("unexpected upstream defaults: %+v", cfg)
	}
	if cfg.BreakerFailureThreshold != 5 || cfg.BreakerOpenTimeout != 30*time.Second {
		t.Fatalf("unexpected breaker defaults: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://127.0.0.1:4200" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.PaymentGatewayMock || cfg.RedisAddr != "" || cfg.WebhookEventsTable != "" || cfg.RabbitMQURL != "" {
		t.Fatalf("optional integrations must default to disabled: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("squareEnvironment", "Production")
	t.Setenv("SQUARE_ACCESS_TOKEN", " EAAA-token ")
	t.Setenv("DEFAULT_CURRENCY", "eur")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "yes")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("UPSTREAM_MAX_RETRIES", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatalf("expected production, got %q", cfg.SquareEnvironment)
	}
	if cfg.SquareAccessToken != "EAAA-token" {
		t.Fatalf("expected trimmed token, got %q", cfg.SquareAccessToken)
	}
	if cfg.DefaultCurrency != "EUR" || !cfg.PaymentGatewayMock {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.RequestTimeout != 3*time.Second || cfg.UpstreamMaxRetries != 0 || cfg.RedisDB != 3 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UppercaseEnvironmentFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQUARE_ENVIRONMENT", "production")
	if !Load().IsProduction() {
		t.Fatalf("expected SQUARE_ENVIRONMENT to be honored")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("UPSTREAM_MAX_RETRIES", "-1")
	t.Setenv("BREAKER_OPEN_TIMEOUT", "0s")

	cfg := Load()
	if cfg.RequestTimeout != 15*time.Second || cfg.UpstreamMaxRetries != 2 || cfg.BreakerOpenTimeout != 30*time.Second {
		t.Fatalf("expected defaults for invalid values: %+v", cfg)
	}
}
