package middleware

import (
	"context"
	"net/http"

	servertiming "github.com/mitchellh/go-server-timing"
)

// ServerTiming adds a Server-Timing header built from metrics started with
// StartTiming.
func ServerTiming(next http.Handler) http.Handler {
	return servertiming.Middleware(next, nil)
}

// StartTiming starts a named metric and returns its stop function. It is a
// no-op outside ServerTiming.
func StartTiming(ctx context.Context, name string) func() {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return func() {}
	}
	m := timing.NewMetric(name).Start()
	return func() { m.Stop() }
}
