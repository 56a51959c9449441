package ports

import (
	"context"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
)

// MethodHandler answers method calls delivered on a channel.
// A returned error becomes a failure envelope; it never crashes the host.
type MethodHandler interface {
	HandleMethodCall(ctx context.Context, call entities.MethodCall) (any, error)
}

// MethodHandlerFunc adapts a function to a MethodHandler.
type MethodHandlerFunc func(ctx context.Context, call entities.MethodCall) (any, error)

// HandleMethodCall calls f(ctx, call).
func (f MethodHandlerFunc) HandleMethodCall(ctx context.Context, call entities.MethodCall) (any, error) {
	return f(ctx, call)
}
