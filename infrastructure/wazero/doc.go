// Package wazero exposes channel registries to WebAssembly guests running
// in the wazero runtime.
//
// Every channel in a registry becomes a host module named after the channel,
// exporting a single function:
//
//	invoke_method(request i64) -> i64
//
// Both request and response are packed pointer+length pairs (upper 32 bits
// pointer, lower 32 bits length) into guest memory. The request holds a JSON
// method call, the response a JSON envelope. Response memory is obtained
// through the guest's "allocate" export.
//
// # Basic Usage
//
//	registry, err := supereasy.Register(supereasy.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	err = adapter.RegisterWithRuntime(ctx, runtime, registry)
//
// A guest built for wasip1 then imports it with:
//
//	//go:wasmimport super_easy_in_app_purchase invoke_method
//	func invokeMethod(packed uint64) uint64
package wazero
