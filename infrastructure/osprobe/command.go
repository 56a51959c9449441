package osprobe

import (
	"context"
	"strings"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	domainerrors "github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
)

// CommandProbe reads the version from the stdout of a system tool.
type CommandProbe struct {
	runner ports.CommandRunner
	label  string
	name   string
	args   []string
}

// NewCommandProbe creates a probe that runs name with args and reports
// the trimmed output under label.
func NewCommandProbe(runner ports.CommandRunner, label, name string, args ...string) *CommandProbe {
	return &CommandProbe{
		runner: runner,
		label:  label,
		name:   name,
		args:   args,
	}
}

// NewGetpropProbe reads the Android release, e.g. "14".
func NewGetpropProbe(runner ports.CommandRunner) *CommandProbe {
	return NewCommandProbe(runner, Label("android"), "getprop", "ro.build.version.release")
}

// NewSwVersProbe reads the macOS product version, e.g. "14.4.1".
func NewSwVersProbe(runner ports.CommandRunner) *CommandProbe {
	return NewCommandProbe(runner, Label("darwin"), "sw_vers", "-productVersion")
}

// Probe implements ports.VersionProbe.
func (p *CommandProbe) Probe(ctx context.Context) (entities.PlatformInfo, error) {
	out, err := p.runner.Output(ctx, p.name, p.args...)
	if err != nil {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{Source: p.name, Err: err}
	}

	version := strings.TrimSpace(string(out))
	if version == "" {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{
			Source: p.name,
			Err:    domainerrors.ErrEmptyVersion,
		}
	}

	return entities.PlatformInfo{
		Label:           p.label,
		Version:         version,
		PlatformVersion: version,
		Source:          p.name,
	}, nil
}
