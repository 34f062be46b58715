package ctx

import (
	"context"
	"github.com/sirupsen/logrus"
)

type Context interface {
	context.Context
}

type requestIDKey struct{}

func New(parent context.Context) Context {
	return parent
}

// WithRequestID returns a child context which carries a request id.
func WithRequestID(parent context.Context, id string) Context {
	return context.WithValue(parent, requestIDKey{}, id)
}

// RequestID returns the request id or an empty string.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logger returns a log entry bound to ctx, with a request id when present.
func Logger(ctx context.Context) *logrus.Entry {
	entry := logrus.WithContext(ctx)
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry
}
