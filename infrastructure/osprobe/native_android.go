//go:build android

package osprobe

import "github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"

func nativeProbes() []ports.VersionProbe {
	return []ports.VersionProbe{
		NewGetpropProbe(NewExecRunner(DefaultCommandTimeout)),
		NewHostProbe(),
		NewUnameProbe(),
	}
}
