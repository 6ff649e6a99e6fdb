package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

const HeaderXIdempotencyKey = "X-Idempotency-Key"

// contextKey is an unexported type for context keys in this package.
// A custom type prevents collisions with keys from other packages.
type contextKey string

const (
	contextKeyRequestID      contextKey = "request_id"
	contextKeyIdempotencyKey contextKey = "idempotency_key"
)

// AttachRequestMetadata moves the chi request id and the optional
// idempotency key into typed context values for handlers and logs.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyRequestID, middleware.GetReqID(r.Context()))
		ctx = context.WithValue(ctx, contextKeyIdempotencyKey, r.Header.Get(HeaderXIdempotencyKey))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID returns the request id attached by AttachRequestMetadata.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// IdempotencyKey returns the caller-supplied idempotency key, or "".
func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(contextKeyIdempotencyKey).(string)
	return key
}
