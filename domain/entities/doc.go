// Package entities provides the core domain types of the plugin.
// They describe method calls arriving on a channel, the results sent back
// and the platform information reported by OS probes.
package entities
