package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
)

const (
	// WebhookSecretHeader authenticates provider callbacks.
	WebhookSecretHeader = "X-Webhook-Secret"
	// InternalAPIKeyHeader authenticates calls from internal services.
	InternalAPIKeyHeader = "X-Internal-API-Key"
)

// SharedSecretMiddleware rejects requests whose header does not carry secret.
// An empty secret rejects every request.
func SharedSecretMiddleware(header, secret string, rejectWith error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(header)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				logger.FromContext(r.Context()).Warnw("shared secret rejected", "header", header, "path", r.URL.Path)
				apperr.Write(w, rejectWith)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WebhookSecretMiddleware guards provider callback routes.
func WebhookSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return SharedSecretMiddleware(WebhookSecretHeader, secret, apperr.ErrInvalidWebhookSecret)
}

// InternalAPIKeyMiddleware guards routes used by back-office services.
func InternalAPIKeyMiddleware(key string) func(http.Handler) http.Handler {
	return SharedSecretMiddleware(InternalAPIKeyHeader, key, apperr.ErrUnauthorized)
}
