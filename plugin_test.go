package supereasy

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/supereasy-dev/super-easy-in-app-purchase/channel"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	"github.com/supereasy-dev/super-easy-in-app-purchase/infrastructure/osprobe"
	sdktest "github.com/supereasy-dev/super-easy-in-app-purchase/internal/testutil"
)

func invoke(t *testing.T, reg *channel.Registry, payload string) []byte {
	t.Helper()

	resp, err := reg.Invoke(context.Background(), ChannelName, []byte(payload))
	require.NoError(t, err)
	return resp
}

func TestRegister_AnyMethodReturnsVersion(t *testing.T) {
	reg, err := Register(DefaultConfig(), WithProbe(sdktest.NewIOSProbe()))
	require.NoError(t, err)
	assert.Equal(t, []string{ChannelName}, reg.Names())

	payloads := []string{
		`{"method":"getPlatformVersion"}`,
		`{"method":"doPurchase","arguments":{"sku":"gold.pack","quantity":2}}`,
		`{"method":""}`,
		``,
	}
	for _, p := range payloads {
		sdktest.AssertResult(t, "iOS 17.4", invoke(t, reg, p))
	}
}

func TestRegister_StrictDispatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictDispatch = true

	reg, err := Register(cfg, WithProbe(sdktest.NewIOSProbe()))
	require.NoError(t, err)

	sdktest.AssertResult(t, "iOS 17.4", invoke(t, reg, `{"method":"getPlatformVersion"}`))

	env := sdktest.DecodeEnvelope(t, invoke(t, reg, `{"method":"doPurchase"}`))
	require.NotNil(t, env.Error)
	assert.Equal(t, channel.CodeNotImplemented, env.Error.Code)
	assert.Equal(t, 501, env.Error.Status)
	assert.Equal(t, "doPurchase", env.Error.Details["reason"])
}

func TestRegister_ProbeFailure(t *testing.T) {
	probe := &sdktest.MockVersionProbe{}
	probe.On("Probe", mock.Anything).Return(entities.PlatformInfo{}, fmt.Errorf("sysctl: operation not permitted"))

	reg, err := Register(DefaultConfig(), WithProbe(probe))
	require.NoError(t, err)

	env := sdktest.DecodeEnvelope(t, invoke(t, reg, `{"method":"getPlatformVersion"}`))
	require.NotNil(t, env.Error)
	assert.Equal(t, channel.CodeUnavailable, env.Error.Code)
	assert.Contains(t, env.Error.Message, "operation not permitted")

	// The channel still answers after a failure.
	env = sdktest.DecodeEnvelope(t, invoke(t, reg, `{"method":"getPlatformVersion"}`))
	require.NotNil(t, env.Error)
	probe.AssertNumberOfCalls(t, "Probe", 2)
}

func TestRegister_ProbePanic(t *testing.T) {
	probe := &sdktest.MockVersionProbe{}
	probe.On("Probe", mock.Anything).Panic("nil pointer in probe")

	reg, err := Register(DefaultConfig(), WithProbe(probe))
	require.NoError(t, err)

	sdktest.AssertErrorCode(t, channel.CodeInternal, invoke(t, reg, `{"method":"getPlatformVersion"}`))
}

func TestRegister_MiddlewarePanic(t *testing.T) {
	boom := func(next channel.ByteHandler) channel.ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			panic("middleware failure")
		}
	}

	reg, err := Register(DefaultConfig(), WithProbe(sdktest.NewIOSProbe()), WithMiddleware(boom))
	require.NoError(t, err)

	var resp []byte
	require.NotPanics(t, func() {
		resp = invoke(t, reg, `{"method":"getPlatformVersion"}`)
	})
	sdktest.AssertErrorCode(t, channel.CodeInternal, resp)
}

func TestRegister_Options(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := channel.NewMetrics("supereasy_test")

	var seen []string
	record := func(next channel.ByteHandler) channel.ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			seen = append(seen, string(payload))
			return next(ctx, payload)
		}
	}

	cfg := DefaultConfig()
	cfg.PlatformLabel = "iPadOS"
	reg, err := Register(cfg,
		WithProbe(sdktest.NewIOSProbe()),
		WithLogger(logger),
		WithMetrics(metrics),
		WithMiddleware(record),
	)
	require.NoError(t, err)

	sdktest.AssertResult(t, "iPadOS 17.4", invoke(t, reg, `{"method":"getPlatformVersion"}`))

	assert.Equal(t, []string{`{"method":"getPlatformVersion"}`}, seen)
	assert.Contains(t, buf.String(), "channel: call completed")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Calls.WithLabelValues(ChannelName, channel.OutcomeOK)))
}

func TestRegister_VersionOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VersionOverride = "99.1"

	reg, err := Register(cfg)
	require.NoError(t, err)

	sdktest.AssertResult(t, osprobe.Label(runtime.GOOS)+" 99.1", invoke(t, reg, `{"method":"getPlatformVersion"}`))
}

func TestRegister_CustomChannel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channel = "store_version"

	reg, err := Register(cfg, WithProbe(sdktest.NewIOSProbe()))
	require.NoError(t, err)
	assert.True(t, reg.Has("store_version"))
	assert.False(t, reg.Has(ChannelName))

	sdktest.AssertErrorCode(t, channel.CodeChannelNotFound, invoke(t, reg, `{"method":"getPlatformVersion"}`))
}

func TestRegister_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channel = ""

	_, err := Register(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel")
}

func TestDefaultRegistry_Once(t *testing.T) {
	first, err := DefaultRegistry()
	require.NoError(t, err)
	second, err := DefaultRegistry()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.Has(ChannelName))
}

func TestPlatformVersion(t *testing.T) {
	got, err := PlatformVersion(context.Background())
	require.NoError(t, err)

	label := osprobe.Label(runtime.GOOS)
	require.True(t, strings.HasPrefix(got, label+" "), "got %q", got)
	assert.NotEmpty(t, strings.TrimPrefix(got, label+" "))

	again, err := PlatformVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestManifest(t *testing.T) {
	m, err := Manifest(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, ChannelName, m.Name)
	assert.Equal(t, Version, m.Version)
	require.Contains(t, m.Channels, ChannelName)

	ch := m.Channels[ChannelName]
	assert.True(t, ch.AnyMethod)
	require.Len(t, ch.Methods, 1)
	assert.Equal(t, "getPlatformVersion", ch.Methods[0].Name)

	assert.Contains(t, string(m.ConfigSchema), "strict_dispatch")
	assert.Contains(t, string(m.ConfigSchema), "version_override")

	strict := DefaultConfig()
	strict.StrictDispatch = true
	m, err = Manifest(strict)
	require.NoError(t, err)
	assert.False(t, m.Channels[ChannelName].AnyMethod)
}
