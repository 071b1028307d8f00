package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine.
//
// The handler context keeps the ctxlog logger of ctx but is detached from its cancellation, so a
// publish triggered by a webhook outlives the HTTP request. Returned errors and panics are logged
// and sent to Sentry (a no-op when Sentry is not configured).
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)
	hub := sentry.CurrentHub().Clone()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger := ctxlog.From(newCtx)
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(stack))
				hub.CaptureException(fmt.Errorf("panic in async handler: %v", r))
			}
		}()

		if err := handler(newCtx); err != nil {
			logger := ctxlog.From(newCtx)
			logger.Error("error in async handler", "error", err)
			hub.CaptureException(err)
		}
	}()
}

func newBackgroundContext(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
