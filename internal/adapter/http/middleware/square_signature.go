package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"square_gateway/pkg"

	"github.com/gin-gonic/gin"
)

const HeaderSquareSignature = "x-square-hmacsha256-signature"

var errInvalidSignature = pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusUnauthorized)

// VerifySquareSignature rejects webhook deliveries whose signature header does not match
// base64(HMAC-SHA256(signatureKey, notificationURL + body)). An empty key disables the check.
// The body is restored so the next handler can read it again.
func VerifySquareSignature(signatureKey, notificationURL string) gin.HandlerFunc {
	if signatureKey == "" {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Printf("[webhook][middleware] read body failed err=%v", err)
			c.AbortWithStatusJSON(errInvalidSignature.HTTPStatus, errInvalidSignature.ToHTTPError())
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !ValidSquareSignature(signatureKey, notificationURL, body, c.GetHeader(HeaderSquareSignature)) {
			log.Printf("[webhook][middleware] signature mismatch payload_len=%d", len(body))
			c.AbortWithStatusJSON(errInvalidSignature.HTTPStatus, errInvalidSignature.ToHTTPError())
			return
		}
		c.Next()
	}
}

func SquareSignature(signatureKey, notificationURL string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(signatureKey))
	mac.Write([]byte(notificationURL))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func ValidSquareSignature(signatureKey, notificationURL string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	expected := SquareSignature(signatureKey, notificationURL, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
