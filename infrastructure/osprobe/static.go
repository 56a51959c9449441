package osprobe

import (
	"context"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	domainerrors "github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
)

const sourceStatic = "static"

// StaticProbe always reports the same platform information.
// It backs the version_override config and tests.
type StaticProbe struct {
	info entities.PlatformInfo
}

// NewStaticProbe creates a StaticProbe reporting info.
func NewStaticProbe(info entities.PlatformInfo) *StaticProbe {
	if info.Source == "" {
		info.Source = sourceStatic
	}
	return &StaticProbe{info: info}
}

// Probe implements ports.VersionProbe.
func (p *StaticProbe) Probe(_ context.Context) (entities.PlatformInfo, error) {
	if p.info.Version == "" {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{
			Source: p.info.Source,
			Err:    domainerrors.ErrEmptyVersion,
		}
	}
	return p.info, nil
}
