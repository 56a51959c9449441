package osprobe

// labels maps GOOS values to the platform label reported to callers.
var labels = map[string]string{
	"ios":       "iOS",
	"android":   "Android",
	"darwin":    "macOS",
	"linux":     "Linux",
	"windows":   "Windows",
	"freebsd":   "FreeBSD",
	"openbsd":   "OpenBSD",
	"netbsd":    "NetBSD",
	"dragonfly": "DragonFly",
	"illumos":   "illumos",
	"solaris":   "Solaris",
	"aix":       "AIX",
}

// Label returns the platform label for a GOOS value.
// Unknown values are returned unchanged.
func Label(goos string) string {
	if l, ok := labels[goos]; ok {
		return l
	}
	return goos
}
