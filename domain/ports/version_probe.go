package ports

import (
	"context"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
)

// VersionProbe queries the operating system for its release version.
// Implementations hold no state between calls.
type VersionProbe interface {
	// Probe returns the platform information of the running system.
	Probe(ctx context.Context) (entities.PlatformInfo, error)
}

// VersionProbeFunc adapts a function to a VersionProbe.
type VersionProbeFunc func(ctx context.Context) (entities.PlatformInfo, error)

// Probe calls f(ctx).
func (f VersionProbeFunc) Probe(ctx context.Context) (entities.PlatformInfo, error) {
	return f(ctx)
}
