// Package reporter implements the version reporter: the handler bound to
// the plugin channel that answers every call with "<Label> <Version>".
package reporter

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/errors"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
)

// MethodGetPlatformVersion is the only method known in strict dispatch mode.
const MethodGetPlatformVersion = "getPlatformVersion"

// reporterConfig holds configuration for the Reporter.
type reporterConfig struct {
	label   string // overrides the probe label when set
	channel string // used in error messages only
	strict  bool   // answer only MethodGetPlatformVersion
}

var errNoProbe = stdErrors.New("no version probe configured")

// Option configures a Reporter.
type Option func(*reporterConfig)

// WithPlatformLabel overrides the label reported by the probe.
func WithPlatformLabel(label string) Option {
	return func(c *reporterConfig) {
		c.label = strings.TrimSpace(label)
	}
}

// WithStrictDispatch makes the reporter answer only getPlatformVersion.
// By default every method name receives the version string.
func WithStrictDispatch(enabled bool) Option {
	return func(c *reporterConfig) {
		c.strict = enabled
	}
}

// WithChannelName records the channel the reporter is bound to.
func WithChannelName(name string) Option {
	return func(c *reporterConfig) {
		c.channel = name
	}
}

// Reporter answers method calls with the OS version string.
// It holds no state between calls and is safe for concurrent use.
type Reporter struct {
	probe  ports.VersionProbe
	config reporterConfig
}

var _ ports.MethodHandler = (*Reporter)(nil)

// New creates a Reporter over probe.
func New(probe ports.VersionProbe, opts ...Option) *Reporter {
	var cfg reporterConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Reporter{probe: probe, config: cfg}
}

// Strict reports whether strict dispatch is enabled.
func (r *Reporter) Strict() bool {
	return r.config.strict
}

// Report returns "<Label> <Version>", e.g. "iOS 17.4".
// A probe failure is returned as *errors.VersionUnavailableError.
func (r *Reporter) Report(ctx context.Context) (string, error) {
	info, err := r.platform(ctx)
	if err != nil {
		return "", err
	}
	return info.Label + " " + info.Version, nil
}

// HandleMethodCall implements ports.MethodHandler.
func (r *Reporter) HandleMethodCall(ctx context.Context, call entities.MethodCall) (any, error) {
	if r.config.strict && call.Method != MethodGetPlatformVersion {
		return nil, &errors.MethodNotImplementedError{Channel: r.config.channel, Method: call.Method}
	}
	v, err := r.Report(ctx)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// platform queries the probe and applies the label override.
func (r *Reporter) platform(ctx context.Context) (entities.PlatformInfo, error) {
	if r.probe == nil {
		return entities.PlatformInfo{}, &errors.VersionUnavailableError{Err: errNoProbe}
	}

	info, err := r.probe.Probe(ctx)
	if err != nil {
		var unavailable *errors.VersionUnavailableError
		if stdErrors.As(err, &unavailable) {
			return entities.PlatformInfo{}, unavailable
		}
		return entities.PlatformInfo{}, &errors.VersionUnavailableError{Err: err}
	}

	if r.config.label != "" {
		info.Label = r.config.label
	}
	info.Version = strings.TrimSpace(info.Version)

	if info.Version == "" {
		return entities.PlatformInfo{}, &errors.VersionUnavailableError{Source: info.Source, Err: errors.ErrEmptyVersion}
	}
	if info.Label == "" {
		return entities.PlatformInfo{}, &errors.VersionUnavailableError{Source: info.Source, Err: errors.ErrUnknownPlatform}
	}
	return info, nil
}
