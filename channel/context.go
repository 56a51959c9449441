package channel

import (
	"context"

	"github.com/google/uuid"
)

// CallContext wraps a context.Context with per-call helpers.
// It carries the channel name, a unique call id and request-scoped values
// that middleware and handlers share.
type CallContext interface {
	context.Context

	// ChannelName returns the name of the channel being invoked.
	ChannelName() string

	// CallID returns the unique id of this call.
	CallID() string

	// SetValue stores a request-scoped value. Unlike context.WithValue,
	// this mutates the existing CallContext.
	SetValue(key, value any)

	// GetValue retrieves a request-scoped value set by SetValue.
	GetValue(key any) (value any, ok bool)
}

type callContextKey struct{}

// callContext is the concrete implementation of CallContext.
type callContext struct {
	context.Context
	values  map[any]any
	channel string
	callID  string
}

// NewCallContext creates a new CallContext wrapping ctx with a fresh call id.
func NewCallContext(ctx context.Context, channel string) CallContext {
	return &callContext{
		Context: ctx,
		channel: channel,
		callID:  uuid.NewString(),
		values:  make(map[any]any),
	}
}

// ChannelName returns the name of the channel being invoked.
func (c *callContext) ChannelName() string {
	return c.channel
}

// CallID returns the unique id of this call.
func (c *callContext) CallID() string {
	return c.callID
}

// SetValue stores a request-scoped value.
func (c *callContext) SetValue(key, value any) {
	c.values[key] = value
}

// GetValue retrieves a request-scoped value.
func (c *callContext) GetValue(key any) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Value makes the CallContext reachable through derived contexts.
func (c *callContext) Value(key any) any {
	if _, ok := key.(callContextKey); ok {
		return c
	}
	return c.Context.Value(key)
}

// CallContextFrom extracts the CallContext from ctx.
// The second result is false when ctx was not created by a Registry.
func CallContextFrom(ctx context.Context) (CallContext, bool) {
	if cc, ok := ctx.(CallContext); ok {
		return cc, true
	}
	cc, ok := ctx.Value(callContextKey{}).(CallContext)
	return cc, ok
}

type outcomeKey struct{}

type methodKey struct{}

// OutcomeOK is recorded for calls that produced a success envelope.
const OutcomeOK = "OK"

// setOutcome records the envelope code of a call for middleware.
func setOutcome(ctx context.Context, outcome string) {
	if cc, ok := CallContextFrom(ctx); ok {
		cc.SetValue(outcomeKey{}, outcome)
	}
}

// Outcome returns OutcomeOK or the error code recorded for the call.
func Outcome(ctx context.Context) string {
	if cc, ok := CallContextFrom(ctx); ok {
		if v, ok := cc.GetValue(outcomeKey{}); ok {
			return v.(string)
		}
	}
	return ""
}

func setMethod(ctx context.Context, method string) {
	if cc, ok := CallContextFrom(ctx); ok {
		cc.SetValue(methodKey{}, method)
	}
}

// Method returns the method name of the call, once decoded.
func Method(ctx context.Context) string {
	if cc, ok := CallContextFrom(ctx); ok {
		if v, ok := cc.GetValue(methodKey{}); ok {
			return v.(string)
		}
	}
	return ""
}
