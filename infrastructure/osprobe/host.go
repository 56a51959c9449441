package osprobe

import (
	"context"
	stdErrors "errors"
	"regexp"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	domainerrors "github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
)

const sourceGopsutil = "gopsutil"

// windowsBuild matches `RELEASE.BUILD Build BUILD`.
var windowsBuild = regexp.MustCompile(`^([\d\.]+?\.)(\d+) Build (\d+)$`)

// HostProbe reads platform and kernel information through gopsutil.
type HostProbe struct {
	goos string
}

// NewHostProbe creates a HostProbe for the running GOOS.
func NewHostProbe() *HostProbe {
	return &HostProbe{goos: runtime.GOOS}
}

// Probe implements ports.VersionProbe.
func (p *HostProbe) Probe(ctx context.Context) (entities.PlatformInfo, error) {
	info := entities.PlatformInfo{
		Label:  Label(p.goos),
		Source: sourceGopsutil,
	}

	platform, _, platformVersion, platformErr := host.PlatformInformationWithContext(ctx)
	if platformErr == nil {
		info.Platform = platform
		info.PlatformVersion = platformVersion
	}

	kernel, kernelErr := host.KernelVersionWithContext(ctx)
	if kernelErr == nil {
		info.Kernel = simplifyBuild(kernel)
	}

	if arch, err := host.KernelArch(); err == nil {
		info.Arch = arch
	}

	info.Version = releaseVersion(p.goos, info.PlatformVersion, info.Kernel)
	if info.Version == "" {
		return info, &domainerrors.VersionUnavailableError{
			Source: sourceGopsutil,
			Err:    stdErrors.Join(platformErr, kernelErr, domainerrors.ErrEmptyVersion),
		}
	}
	return info, nil
}

// releaseVersion picks the version reported to callers.
// Product platforms report their product version; unix kernels report
// the kernel release.
func releaseVersion(goos, platformVersion, kernel string) string {
	switch goos {
	case "darwin", "ios", "android", "windows":
		return simplifyBuild(strings.TrimSpace(platformVersion))
	default:
		return strings.TrimSpace(kernel)
	}
}

// simplifyBuild turns `10.0.22621 Build 22621` into `10.0.22621`.
func simplifyBuild(v string) string {
	match := windowsBuild.FindStringSubmatch(v)
	if len(match) == 4 && match[2] == match[3] {
		return match[1] + match[2]
	}
	return v
}
