package channel

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
)

type successEnvelope struct {
	Result any `json:"result"`
}

type errorEnvelope struct {
	Error ErrorResponse `json:"error"`
}

// envelope is the decoding view of either envelope kind.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  *ErrorResponse  `json:"error"`
}

// DecodeMethodCall parses a call payload. An empty payload is a call with
// no method name and no arguments.
func DecodeMethodCall(payload []byte) (entities.MethodCall, error) {
	var call entities.MethodCall
	if len(bytes.TrimSpace(payload)) == 0 {
		return call, nil
	}
	if err := json.Unmarshal(payload, &call); err != nil {
		return entities.MethodCall{}, &errors.CodecError{Operation: "decode", Err: err}
	}
	return call, nil
}

// EncodeMethodCall serializes a call payload.
func EncodeMethodCall(call entities.MethodCall) ([]byte, error) {
	data, err := json.Marshal(call)
	if err != nil {
		return nil, &errors.CodecError{Operation: "encode", Err: err}
	}
	return data, nil
}

// EncodeResult serializes a success envelope.
func EncodeResult(value any) ([]byte, error) {
	data, err := json.Marshal(successEnvelope{Result: value})
	if err != nil {
		return nil, &errors.CodecError{Operation: "encode", Err: err}
	}
	return data, nil
}

// DecodeResult parses a response envelope into a CallResult.
func DecodeResult(data []byte) (entities.CallResult, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return entities.CallResult{}, &errors.CodecError{Operation: "decode", Err: err}
	}

	if env.Error != nil {
		return entities.CallFailure(env.Error.ToErrorDetail()), nil
	}
	if env.Result == nil {
		return entities.CallResult{}, &errors.CodecError{
			Operation: "decode",
			Err:       fmt.Errorf("envelope has neither result nor error: %s", data),
		}
	}

	var value any
	if err := json.Unmarshal(env.Result, &value); err != nil {
		return entities.CallResult{}, &errors.CodecError{Operation: "decode", Err: err}
	}
	return entities.CallSuccess(value), nil
}
