//go:build darwin

package osprobe

import (
	"runtime"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
)

func nativeProbes() []ports.VersionProbe {
	probes := []ports.VersionProbe{NewProductVersionProbe()}
	// sw_vers does not exist on iOS.
	if runtime.GOOS == "darwin" {
		probes = append(probes, NewSwVersProbe(NewExecRunner(DefaultCommandTimeout)))
	}
	return append(probes, NewHostProbe(), NewUnameProbe())
}
