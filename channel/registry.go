package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
)

// DefaultMaxRequestSize limits the size of incoming call payloads (1MB).
const DefaultMaxRequestSize = 1 * 1024 * 1024

// Registry is an immutable collection of named channels.
// Once created via NewRegistry, channels cannot be added or removed.
// This keeps lookups lock-free and makes each binding a one-time event.
type Registry struct {
	handlers       map[string]ByteHandler
	notFound       ByteHandler
	names          []string // sorted for consistent iteration
	maxRequestSize int
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	handlers       map[string]ByteHandler
	middleware     []Middleware
	errors         []error
	maxRequestSize int
}

// Option is a functional option for configuring a Registry.
type Option func(*registryBuilder)

// NewRegistry creates an immutable Registry with the given options.
// Returns an error if any channel name is empty or registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(LoggingMiddleware(nil), PanicRecoveryMiddleware()),
//	    WithChannel("super_easy_in_app_purchase", reporter),
//	)
func NewRegistry(opts ...Option) (*Registry, error) {
	b := &registryBuilder{
		handlers:       make(map[string]ByteHandler),
		maxRequestSize: DefaultMaxRequestSize,
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	wrapped := make(map[string]ByteHandler, len(b.handlers))
	for name, handler := range b.handlers {
		wrapped[name] = b.wrap(limitRequestSize(b.maxRequestSize, handler))
	}

	return &Registry{
		handlers:       wrapped,
		notFound:       b.wrap(channelNotFound),
		names:          names,
		maxRequestSize: b.maxRequestSize,
	}, nil
}

// wrap applies middleware in reverse order so the first one wraps outermost.
func (b *registryBuilder) wrap(h ByteHandler) ByteHandler {
	for i := len(b.middleware) - 1; i >= 0; i-- {
		h = b.middleware[i](h)
	}
	return h
}

// limitRequestSize rejects payloads larger than limit with a BAD_REQUEST envelope.
func limitRequestSize(limit int, next ByteHandler) ByteHandler {
	if limit <= 0 {
		return next
	}
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		if len(payload) > limit {
			setOutcome(ctx, CodeBadRequest)
			msg := fmt.Sprintf("request size %d exceeds maximum %d bytes", len(payload), limit)
			return NewBadRequestError(msg).ToJSON(), nil
		}
		return next(ctx, payload)
	}
}

// channelNotFound answers calls on names with no binding.
func channelNotFound(ctx context.Context, _ []byte) ([]byte, error) {
	setOutcome(ctx, CodeChannelNotFound)
	name := ""
	if cc, ok := CallContextFrom(ctx); ok {
		name = cc.ChannelName()
	}
	return NewChannelNotFoundError(name).ToJSON(), nil
}

// Invoke dispatches a call payload to the named channel.
// Returns the envelope bytes; an unknown channel yields a CHANNEL_NOT_FOUND envelope.
// Both size and lookup failures pass through the registry middleware.
func (r *Registry) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	handler, ok := r.handlers[name]
	if !ok {
		slog.WarnContext(ctx, "channel: call on unknown channel", "channel", name)
		handler = r.notFound
	}
	return handler(NewCallContext(ctx, name), payload)
}

// InvokeMethod encodes call, dispatches it and decodes the envelope.
func (r *Registry) InvokeMethod(ctx context.Context, name string, call entities.MethodCall) (entities.CallResult, error) {
	payload, err := EncodeMethodCall(call)
	if err != nil {
		return entities.CallResult{}, err
	}

	resp, err := r.Invoke(ctx, name, payload)
	if err != nil {
		return entities.CallResult{}, fmt.Errorf("invoke %s: %w", name, err)
	}
	return DecodeResult(resp)
}

// Has returns true if a channel with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns a sorted list of all registered channel names.
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// MaxRequestSize returns the payload size limit enforced by Invoke.
func (r *Registry) MaxRequestSize() int {
	return r.maxRequestSize
}

// addHandler registers a handler with the given name.
func (b *registryBuilder) addHandler(name string, handler ByteHandler) error {
	if name == "" {
		return &errors.RegistrationError{Channel: name, Err: fmt.Errorf("channel name cannot be empty")}
	}
	if handler == nil {
		return &errors.RegistrationError{Channel: name, Err: fmt.Errorf("handler cannot be nil")}
	}
	if _, exists := b.handlers[name]; exists {
		return &errors.RegistrationError{Channel: name, Err: fmt.Errorf("duplicate channel name: %q", name)}
	}
	b.handlers[name] = handler
	return nil
}

// WithChannel binds a MethodHandler to a channel name.
func WithChannel(name string, h ports.MethodHandler) Option {
	return func(b *registryBuilder) {
		if h == nil {
			b.errors = append(b.errors, &errors.RegistrationError{Channel: name, Err: fmt.Errorf("handler cannot be nil")})
			return
		}
		if err := b.addHandler(name, NewMethodHandler(h)); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithByteHandler binds a raw ByteHandler to a channel name.
// Use WithChannel for automatic call decoding and envelope encoding.
func WithByteHandler(name string, handler ByteHandler) Option {
	return func(b *registryBuilder) {
		if err := b.addHandler(name, handler); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) Option {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithMaxRequestSize sets the payload size limit. Zero disables the limit.
func WithMaxRequestSize(size int) Option {
	return func(b *registryBuilder) {
		b.maxRequestSize = size
	}
}
