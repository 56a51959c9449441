package entities

import "encoding/json"

// MethodCall is a single invocation delivered on a channel.
// Arguments are kept opaque; handlers decode them only if they need to.
type MethodCall struct {
	// Arguments holds the raw JSON arguments, if any.
	Arguments json.RawMessage `json:"arguments,omitempty"`

	// Method is the declared method name, e.g. "getPlatformVersion".
	Method string `json:"method"`
}

// NewMethodCall creates a MethodCall with no arguments.
func NewMethodCall(method string) MethodCall {
	return MethodCall{Method: method}
}

// HasArguments reports whether the call carries a non-null argument payload.
func (c MethodCall) HasArguments() bool {
	return len(c.Arguments) > 0 && string(c.Arguments) != "null"
}

// CallResult is the outcome of a MethodCall.
// Exactly one of Value or Error is meaningful.
type CallResult struct {
	// Value is the success payload. For the version channel it is a string.
	Value any `json:"result,omitempty"`

	// Error is set when the call failed.
	Error *ErrorDetail `json:"error,omitempty"`
}

// CallSuccess creates a successful CallResult.
func CallSuccess(value any) CallResult {
	return CallResult{Value: value}
}

// CallFailure creates a failed CallResult.
func CallFailure(err *ErrorDetail) CallResult {
	return CallResult{Error: err}
}

// IsError reports whether the result carries an error.
func (r CallResult) IsError() bool {
	return r.Error != nil
}

// String returns the value as a string, or "" when the value is not a string.
func (r CallResult) String() string {
	s, _ := r.Value.(string)
	return s
}
