package wazero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/supereasy-dev/super-easy-in-app-purchase/channel"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// FunctionName is the export every channel host module provides.
const FunctionName = "invoke_method"

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// ModulePrefix is prepended to each channel name to form the host module name.
	ModulePrefix string

	// MaxRequestSize limits the size of incoming requests from guest memory.
	// Zero means the registry's own limit.
	MaxRequestSize uint32
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModulePrefix sets a prefix for host module names (default: none).
func WithModulePrefix(prefix string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModulePrefix = prefix
	}
}

// WithMaxRequestSize sets the maximum request size from guest memory.
func WithMaxRequestSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxRequestSize = size
	}
}

// defaultAdapterConfig returns the default adapter configuration.
func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		MaxRequestSize: channel.DefaultMaxRequestSize,
	}
}

// ModuleName returns the host module name used for channel.
func (c AdapterConfig) ModuleName(channelName string) string {
	return c.ModulePrefix + channelName
}

// RegisterWithRuntime instantiates one host module per registry channel.
//
// Each invoke_method export is wrapped to:
//   - Read request bytes from guest memory using the packed i64 ptr+len format
//   - Invoke the channel with the request payload
//   - Allocate response memory in the guest using the "allocate" export
//   - Write response bytes to guest memory
//   - Return packed i64 ptr+len of the response
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *channel.Registry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	if size := registry.MaxRequestSize(); size > 0 {
		cfg.MaxRequestSize = uint32(size) //nolint:gosec // G115: bounded by registry config
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, name := range registry.Names() {
		channelName := name // capture for closure
		_, err := runtime.NewHostModuleBuilder(cfg.ModuleName(channelName)).
			NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				handleChannelCall(ctx, mod, stack, registry, channelName, cfg.MaxRequestSize)
			}), []api.ValueType{api.ValueTypeI64}, []api.ValueType{api.ValueTypeI64}).
			Export(FunctionName).
			Instantiate(ctx)
		if err != nil {
			return fmt.Errorf("instantiate host module for channel %q: %w", channelName, err)
		}
	}
	return nil
}

// handleChannelCall reads the request from guest memory, invokes the channel
// and writes the response.
func handleChannelCall(ctx context.Context, mod api.Module, stack []uint64, registry *channel.Registry, name string, maxRequestSize uint32) {
	ptr, length := unpackPtrLen(stack[0])
	guest := GuestName(ctx, mod)

	if maxRequestSize > 0 && length > maxRequestSize {
		errMsg := fmt.Sprintf("request size %d exceeds maximum %d bytes", length, maxRequestSize)
		slog.ErrorContext(ctx, "wazero: "+errMsg, "channel", name, "guest", guest)
		stack[0] = writeErrorResponse(ctx, mod, channel.NewBadRequestError(errMsg))
		return
	}

	requestBytes, ok := mod.Memory().Read(ptr, length)
	if !ok {
		errMsg := "failed to read request from guest memory"
		slog.ErrorContext(ctx, "wazero: "+errMsg, "channel", name, "guest", guest)
		stack[0] = writeErrorResponse(ctx, mod, channel.NewInternalError(errMsg))
		return
	}

	responseBytes, err := registry.Invoke(ctx, name, requestBytes)
	if err != nil {
		slog.ErrorContext(ctx, "wazero: channel invocation failed", "channel", name, "guest", guest, "error", err)
		stack[0] = writeErrorResponse(ctx, mod, channel.NewInternalError(err.Error()))
		return
	}

	stack[0] = writeResponse(ctx, mod, responseBytes)
}

// writeResponse allocates memory in the guest and writes the response bytes.
// Returns packed ptr+len or 0 on failure.
func writeResponse(ctx context.Context, mod api.Module, data []byte) uint64 {
	allocateFn := mod.ExportedFunction("allocate")
	if allocateFn == nil {
		slog.ErrorContext(ctx, "wazero: guest module missing 'allocate' export")
		return 0
	}

	results, err := allocateFn.Call(ctx, uint64(len(data)))
	if err != nil {
		slog.ErrorContext(ctx, "wazero: failed to call guest allocate", "error", err)
		return 0
	}
	ptr := uint32(results[0]) //nolint:gosec // G115: WASM32 pointers are always 32-bit

	if !mod.Memory().Write(ptr, data) {
		slog.ErrorContext(ctx, "wazero: failed to write response to guest memory")
		return 0
	}

	return packPtrLen(ptr, uint32(len(data))) //nolint:gosec // G115: Data length is bounded by config
}

// writeErrorResponse writes an error envelope to guest memory.
func writeErrorResponse(ctx context.Context, mod api.Module, errResp channel.ErrorResponse) uint64 {
	return writeResponse(ctx, mod, errResp.ToJSON())
}

// packPtrLen packs a pointer and length into a single i64.
// Upper 32 bits: pointer, lower 32 bits: length.
func packPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// unpackPtrLen unpacks a pointer and length from a packed i64.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> 32)           //nolint:gosec // G115: Packed format stores 32-bit values
	length = uint32(packed & 0xFFFFFFFF) //nolint:gosec // G115: Packed format stores 32-bit values
	return ptr, length
}
