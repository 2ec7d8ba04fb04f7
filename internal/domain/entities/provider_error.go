package entities

import (
	"fmt"
	"net/http"
	"strings"
)

// ProviderErrorDetail mirrors one entry of Square's "errors" array.
type ProviderErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Field    string `json:"field,omitempty"`
}

// ProviderError is an upstream failure normalized by the gateway.
//
// StatusCode is 0 when the request never produced an HTTP response (dial, TLS, timeout).
type ProviderError struct {
	StatusCode int
	Message    string
	Errors     []ProviderErrorDetail
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "square api error status=%d", e.StatusCode)
	if e.Message != "" {
		fmt.Fprintf(&b, " message=%q", e.Message)
	}
	for _, d := range e.Errors {
		fmt.Fprintf(&b, " [category=%s code=%s detail=%q]", d.Category, d.Code, d.Detail)
	}
	return b.String()
}

// Transient reports whether the same request may succeed if sent again.
func (e *ProviderError) Transient() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}
