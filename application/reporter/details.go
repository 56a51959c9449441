package reporter

import (
	"context"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// Details is a structured breakdown of the reported version.
type Details struct {
	Label           string `json:"label"`
	Version         string `json:"version"`
	SemVer          string `json:"semver,omitempty"`
	Platform        string `json:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty"`
	Kernel          string `json:"kernel,omitempty"`
	Arch            string `json:"arch,omitempty"`
	Source          string `json:"source,omitempty"`
	Major           int64  `json:"major"`
	Minor           int64  `json:"minor"`
	Patch           int64  `json:"patch"`
}

// String returns the same value Report would.
func (d Details) String() string {
	return d.Label + " " + d.Version
}

// Details returns the structured version breakdown.
func (r *Reporter) Details(ctx context.Context) (Details, error) {
	info, err := r.platform(ctx)
	if err != nil {
		return Details{}, err
	}

	d := Details{
		Label:           info.Label,
		Version:         info.Version,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		Kernel:          info.Kernel,
		Arch:            info.Arch,
		Source:          info.Source,
	}
	if v := ParseSemVer(info.Version); v != nil {
		d.SemVer = v.String()
		d.Major, d.Minor, d.Patch = v.Major, v.Minor, v.Patch
	}
	return d, nil
}

// ParseSemVer normalises an OS version to semver.
// "17.4" becomes 17.4.0 and "6.5.0-14-generic" keeps its pre-release part.
// Versions that cannot be normalised return nil.
func ParseSemVer(version string) *semver.Version {
	core, rest := splitCore(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if core == "" {
		return nil
	}

	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "0")
	}

	v, err := semver.NewVersion(strings.Join(parts, ".") + rest)
	if err != nil {
		return nil
	}
	return v
}

// splitCore splits "6.5.0-14-generic" into "6.5.0" and "-14-generic".
func splitCore(s string) (core, rest string) {
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i < 0 {
		return strings.Trim(s, "."), ""
	}
	core = strings.Trim(s[:i], ".")
	rest = s[i:]
	if rest != "" && rest[0] != '-' && rest[0] != '+' {
		rest = "-" + rest
	}
	return core, rest
}
