package channel

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps a ByteHandler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next ByteHandler) ByteHandler

// PanicRecoveryMiddleware returns a middleware that catches panics and converts
// them to an INTERNAL_ERROR envelope instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					setOutcome(ctx, CodeInternal)
					resp = NewPanicError(r).ToJSON()
					err = nil // Return JSON error, not Go error
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware returns a middleware that logs every call with its
// channel, method, call id, outcome and duration. A nil logger uses slog.Default.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			l := logger
			if l == nil {
				l = slog.Default()
			}

			attrs := []any{}
			if cc, ok := CallContextFrom(ctx); ok {
				attrs = append(attrs, "channel", cc.ChannelName(), "call_id", cc.CallID())
			}
			l.DebugContext(ctx, "channel: invoking", attrs...)

			start := time.Now()
			resp, err := next(ctx, payload)
			attrs = append(attrs,
				"method", Method(ctx),
				"outcome", Outcome(ctx),
				"duration", time.Since(start),
			)

			switch {
			case err != nil:
				l.ErrorContext(ctx, "channel: call failed", append(attrs, "error", err)...)
			case Outcome(ctx) != OutcomeOK:
				l.WarnContext(ctx, "channel: call returned error envelope", attrs...)
			default:
				l.DebugContext(ctx, "channel: call completed", attrs...)
			}
			return resp, err
		}
	}
}
