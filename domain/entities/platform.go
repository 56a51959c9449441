package entities

// PlatformInfo is what an OS probe knows about the running system.
type PlatformInfo struct {
	// Label is the OS family label, e.g. "iOS", "Android", "Linux".
	Label string `json:"label"`

	// Version is the release version reported to callers, e.g. "17.4".
	Version string `json:"version"`

	// Platform is the distribution or product name when known, e.g. "ubuntu".
	Platform string `json:"platform,omitempty"`

	// PlatformVersion is the distribution or product version when known.
	PlatformVersion string `json:"platform_version,omitempty"`

	// Kernel is the kernel release.
	Kernel string `json:"kernel,omitempty"`

	// Arch is the kernel architecture, e.g. "x86_64".
	Arch string `json:"arch,omitempty"`

	// Source names the probe that produced this info.
	Source string `json:"source,omitempty"`
}

// String returns "<Label> <Version>".
func (p PlatformInfo) String() string {
	if p.Label == "" {
		return p.Version
	}
	if p.Version == "" {
		return p.Label
	}
	return p.Label + " " + p.Version
}
