package channel

import (
	"context"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
)

// ByteHandler accepts a raw call payload and returns a raw envelope.
// This is the common interface transports (WASM, gomobile, CLI) use.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewMethodHandler wraps a ports.MethodHandler into a ByteHandler.
// It decodes the call, invokes the handler and encodes the envelope.
// Handler errors become error envelopes, never Go errors.
func NewMethodHandler(h ports.MethodHandler) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		call, err := DecodeMethodCall(payload)
		if err != nil {
			setOutcome(ctx, CodeBadRequest)
			return NewBadRequestError(err.Error()).ToJSON(), nil
		}
		setMethod(ctx, call.Method)

		value, err := h.HandleMethodCall(ctx, call)
		if err != nil {
			resp := FromError(err)
			setOutcome(ctx, resp.Code)
			return resp.ToJSON(), nil
		}

		data, err := EncodeResult(value)
		if err != nil {
			setOutcome(ctx, CodeInternal)
			return nil, err
		}
		setOutcome(ctx, OutcomeOK)
		return data, nil
	}
}
