//go:build darwin

package osprobe

import (
	"context"
	"runtime"
	"strings"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	domainerrors "github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
	"golang.org/x/sys/unix"
)

const sourceSysctl = "sysctl"

// ProductVersionProbe reads kern.osproductversion, which holds the
// user-facing version on both macOS and iOS (e.g. "17.4").
type ProductVersionProbe struct {
	goos string
}

// NewProductVersionProbe creates a ProductVersionProbe for the running GOOS.
func NewProductVersionProbe() *ProductVersionProbe {
	return &ProductVersionProbe{goos: runtime.GOOS}
}

// Probe implements ports.VersionProbe.
func (p *ProductVersionProbe) Probe(_ context.Context) (entities.PlatformInfo, error) {
	version, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{Source: sourceSysctl, Err: err}
	}
	version = strings.TrimSpace(strings.TrimRight(version, "\x00"))
	if version == "" {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{
			Source: sourceSysctl,
			Err:    domainerrors.ErrEmptyVersion,
		}
	}

	info := entities.PlatformInfo{
		Label:           Label(p.goos),
		Version:         version,
		PlatformVersion: version,
		Source:          sourceSysctl,
	}
	if release, err := unix.Sysctl("kern.osrelease"); err == nil {
		info.Kernel = strings.TrimRight(release, "\x00")
	}
	if machine, err := unix.Sysctl("hw.machine"); err == nil {
		info.Arch = strings.TrimRight(machine, "\x00")
	}
	return info, nil
}
