//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package osprobe

import "github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"

func nativeProbes() []ports.VersionProbe {
	return []ports.VersionProbe{NewHostProbe()}
}
