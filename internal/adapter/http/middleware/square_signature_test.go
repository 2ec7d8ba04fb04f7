package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

const (
	testKey = "sig-key"
	testURL = "https://example.com/payment-webhook"
)

func newSignedRouter(key string, seen *string) *gin.Engine {
	r := gin.New()
	r.POST("/payment-webhook", VerifySquareSignature(key, testURL), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		*seen = string(raw)
		c.Status(http.StatusOK)
	})
	return r
}

func TestVerifySquareSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	body := `{"event_id":"evt-1"}`

	t.Run("valid signature passes body through", func(t *testing.T) {
		var seen string
		r := newSignedRouter(testKey, &seen)

		req := httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewBufferString(body))
		req.Header.Set(HeaderSquareSignature, SquareSignature(testKey, testURL, []byte(body)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if seen != body {
			t.Fatalf("expected downstream to read the original body, got %q", seen)
		}
	})

	t.Run("tampered body is rejected", func(t *testing.T) {
		var seen string
		r := newSignedRouter(testKey, &seen)

		req := httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewBufferString(`{"event_id":"evt-2"}`))
		req.Header.Set(HeaderSquareSignature, SquareSignature(testKey, testURL, []byte(body)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if seen != "" {
			t.Fatalf("handler must not run on bad signature")
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		var seen string
		r := newSignedRouter(testKey, &seen)

		req := httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("empty key disables verification", func(t *testing.T) {
		var seen string
		r := newSignedRouter("", &seen)

		req := httptest.NewRequest(http.MethodPost, "/payment-webhook", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK || seen != body {
			t.Fatalf("expected pass-through, got %d body=%q", w.Code, seen)
		}
	})
}

func TestSquareSignature_KnownVector(t *testing.T) {
	// HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog")
	got := SquareSignature("key", "The quick brown fox ", []byte("jumps over the lazy dog"))
	if got != "97yD9DBThCSxMpjmqm+xQ+9NWaFJRhdZl0edvC0aPNg=" {
		t.Fatalf("unexpected signature: %s", got)
	}
}
