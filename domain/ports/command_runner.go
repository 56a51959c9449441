package ports

import (
	"context"
)

// CommandRunner runs a short-lived system command and returns its stdout.
// Probes use it for tools like getprop and sw_vers.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}
