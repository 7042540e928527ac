package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry configures the global client. An empty DSN disables reporting.
// The returned func flushes buffered events and should run on shutdown.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr reports err on the given hub, falling back to the global one.
func CaptureErr(hub *sentry.Hub, err error) {
	if err == nil {
		return
	}
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
