// Package osprobe implements ports.VersionProbe for the platforms the plugin
// runs on. Each probe asks the OS one way; Chain tries them in order and
// Default returns the chain suited to the build target.
package osprobe
