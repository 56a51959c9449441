// Package testutil provides common test utilities and mocks for the plugin's tests.
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// Envelope mirrors the channel wire envelope for decoding in tests.
type Envelope struct {
	Result any `json:"result"`
	Error  *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Status  int            `json:"status"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

// DecodeEnvelope unmarshals a channel response, failing the test on bad JSON.
func DecodeEnvelope(t *testing.T, data []byte) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env), "response is not a valid envelope: %s", data)
	return env
}

// AssertResult asserts that a channel response is a success envelope carrying want.
func AssertResult(t *testing.T, want string, data []byte) {
	t.Helper()

	env := DecodeEnvelope(t, data)
	require.Nil(t, env.Error, "unexpected error envelope: %s", data)
	assert.Equal(t, want, env.Result)
}

// AssertErrorCode asserts that a channel response is an error envelope with code.
func AssertErrorCode(t *testing.T, code string, data []byte) {
	t.Helper()

	env := DecodeEnvelope(t, data)
	require.NotNil(t, env.Error, "expected error envelope, got: %s", data)
	assert.Equal(t, code, env.Error.Code)
}
