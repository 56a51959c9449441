package osprobe

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// DefaultCommandTimeout bounds how long a probe command may run.
const DefaultCommandTimeout = 2 * time.Second

// ExecRunner implements ports.CommandRunner with os/exec.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner creates an ExecRunner. A zero timeout means no limit
// beyond the caller's context.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Output runs the command and returns its stdout.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}
	return out, nil
}
