// Package channel provides the host-side message dispatch for plugins.
//
// A Registry binds channel names to handlers once, at construction time.
// Callers deliver JSON method calls ({"method": ..., "arguments": ...}) and
// receive a success envelope ({"result": ...}) or an error envelope
// ({"error": {"code", "message", "status", "details"}}). Handler failures
// and panics are always turned into error envelopes; the host never crashes.
package channel
