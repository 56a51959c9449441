package osprobe

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	domainerrors "github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
)

const sourceChain = "chain"

var errNoProbes = stdErrors.New("no probes configured")

// Chain tries probes in order and returns the first non-empty version.
type Chain struct {
	probes []ports.VersionProbe
}

// NewChain creates a Chain over the given probes. Nil probes are skipped.
func NewChain(probes ...ports.VersionProbe) *Chain {
	c := &Chain{}
	for _, p := range probes {
		if p != nil {
			c.probes = append(c.probes, p)
		}
	}
	return c
}

// Default returns the probe chain for the build target.
func Default() *Chain {
	return NewChain(nativeProbes()...)
}

// Len returns the number of probes in the chain.
func (c *Chain) Len() int {
	return len(c.probes)
}

// Probe implements ports.VersionProbe.
func (c *Chain) Probe(ctx context.Context) (entities.PlatformInfo, error) {
	if len(c.probes) == 0 {
		return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{Source: sourceChain, Err: errNoProbes}
	}

	errs := make([]error, 0, len(c.probes))
	for _, p := range c.probes {
		info, err := p.Probe(ctx)
		if err == nil && info.Version != "" {
			return info, nil
		}
		if err == nil {
			err = domainerrors.ErrEmptyVersion
		}
		slog.DebugContext(ctx, "osprobe: probe failed, trying next", "error", err)
		errs = append(errs, err)
	}

	return entities.PlatformInfo{}, &domainerrors.VersionUnavailableError{
		Source: sourceChain,
		Err:    stdErrors.Join(errs...),
	}
}
