package channel

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
	"github.com/supereasy-dev/super-easy-in-app-purchase/internal/testutil"
)

func TestPanicRecoveryMiddleware(t *testing.T) {
	panicHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		panic("test panic")
	}

	wrapped := PanicRecoveryMiddleware()(panicHandler)

	// Should not panic, should return structured error
	resp, err := wrapped(context.Background(), []byte("{}"))
	require.NoError(t, err)

	env := testutil.DecodeEnvelope(t, resp)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeInternal, env.Error.Code)
	assert.Equal(t, 500, env.Error.Status)
	assert.Contains(t, env.Error.Message, "test panic")
	assert.Equal(t, entities.ErrorTypePanic, env.Error.Details["type"])
}

func TestPanicRecoveryMiddleware_NoPanic(t *testing.T) {
	normalHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return []byte(`{"result":"ok"}`), nil
	}

	resp, err := PanicRecoveryMiddleware()(normalHandler)(context.Background(), []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, `{"result":"ok"}`, string(resp))
}

func TestPanicRecoveryMiddleware_InRegistry(t *testing.T) {
	h := ports.MethodHandlerFunc(func(ctx context.Context, call entities.MethodCall) (any, error) {
		panic("probe exploded")
	})
	reg, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithChannel(testChannel, h),
	)
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), testChannel, []byte(`{"method":"getPlatformVersion"}`))
	require.NoError(t, err)
	testutil.AssertErrorCode(t, CodeInternal, resp)

	// The registry keeps serving after a panic.
	resp, err = reg.Invoke(context.Background(), testChannel, []byte(`{"method":"getPlatformVersion"}`))
	require.NoError(t, err)
	testutil.AssertErrorCode(t, CodeInternal, resp)
}

func TestMiddlewareOrder_FIFO(t *testing.T) {
	var callOrder []string

	record := func(name string) Middleware {
		return func(next ByteHandler) ByteHandler {
			return func(ctx context.Context, payload []byte) ([]byte, error) {
				callOrder = append(callOrder, name+"-before")
				resp, err := next(ctx, payload)
				callOrder = append(callOrder, name+"-after")
				return resp, err
			}
		}
	}

	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		callOrder = append(callOrder, "handler")
		return []byte(`{"result":"ok"}`), nil
	}

	reg, err := NewRegistry(
		WithMiddleware(record("mw1"), record("mw2")),
		WithByteHandler("test", handler),
	)
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), "test", nil)
	require.NoError(t, err)

	expected := []string{
		"mw1-before",
		"mw2-before",
		"handler",
		"mw2-after",
		"mw1-after",
	}
	assert.Equal(t, expected, callOrder)
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		handler   ports.MethodHandler
		wantLevel string
		wantMsg   string
		outcome   string
	}{
		{
			name:      "success",
			handler:   versionHandler("iOS 17.4"),
			wantLevel: "DEBUG",
			wantMsg:   "channel: call completed",
			outcome:   OutcomeOK,
		},
		{
			name: "error envelope",
			handler: ports.MethodHandlerFunc(func(ctx context.Context, call entities.MethodCall) (any, error) {
				return nil, stdError("boom")
			}),
			wantLevel: "WARN",
			wantMsg:   "channel: call returned error envelope",
			outcome:   CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			reg, err := NewRegistry(
				WithMiddleware(LoggingMiddleware(logger)),
				WithChannel(testChannel, tt.handler),
			)
			require.NoError(t, err)

			_, err = reg.Invoke(context.Background(), testChannel, []byte(`{"method":"getPlatformVersion"}`))
			require.NoError(t, err)

			out := buf.String()
			assert.Contains(t, out, "level="+tt.wantLevel)
			assert.Contains(t, out, tt.wantMsg)
			assert.Contains(t, out, "channel="+testChannel)
			assert.Contains(t, out, "method=getPlatformVersion")
			assert.Contains(t, out, "outcome="+tt.outcome)
			assert.Contains(t, out, "call_id=")
		})
	}
}

type stdError string

func (e stdError) Error() string { return string(e) }
