package logging

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// Init configures the process logger. Logs go to stderr; stdout is reserved
// for the operator console.
func Init(level, env string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(lvl)

	if env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// WithRequestID stores the request ID on ctx.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from ctx, or "" when absent.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// FromContext returns an entry tagged with the request ID carried by ctx.
func FromContext(ctx context.Context) *logrus.Entry {
	rid := RequestID(ctx)
	if rid == "" {
		rid = "unknown"
	}
	return logrus.WithField("request_id", rid)
}
