// Package requestctx carries the per-request correlation id through
// context. It lives outside the transport layer so non-HTTP code can
// log it without importing middleware.
package requestctx

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the id set by WithRequestID, or "" when the
// request never passed through the middleware.
func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}
