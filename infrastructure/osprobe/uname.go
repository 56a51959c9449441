//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package osprobe

import (
	"context"
	"runtime"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	domainerrors "github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
	"golang.org/x/sys/unix"
)

const sourceUname = "uname"

// UnameProbe reports the kernel release from uname(2).
type UnameProbe struct {
	goos string
}

// NewUnameProbe creates a UnameProbe for the running GOOS.
func NewUnameProbe() *UnameProbe {
	return &UnameProbe{goos: runtime.GOOS}
}

// Probe implements ports.VersionProbe.
func (p *UnameProbe) Probe(_ context.Context) (entities.PlatformInfo, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{Source: sourceUname, Err: err}
	}

	release := unix.ByteSliceToString(uname.Release[:])
	if release == "" {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{
			Source: sourceUname,
			Err:    domainerrors.ErrEmptyVersion,
		}
	}

	return entities.PlatformInfo{
		Label:   Label(p.goos),
		Version: release,
		Kernel:  release,
		Arch:    unix.ByteSliceToString(uname.Machine[:]),
		Source:  sourceUname,
	}, nil
}
