// Package ports defines the interfaces between the plugin core and its
// adapters. The reporter depends on these abstractions; OS probes, the
// channel registry and parsers implement or consume them.
package ports
