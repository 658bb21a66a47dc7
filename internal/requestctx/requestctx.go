package requestctx

import "context"

type ctxKey struct{}

var requestIDKey ctxKey

// WithRequestID returns a context carrying the request id assigned at the
// edge of the HTTP pipeline.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}
