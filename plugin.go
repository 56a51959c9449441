// Package supereasy is the entry point of the super_easy_in_app_purchase
// plugin. It binds the version reporter to its channel and exposes the
// version as a plain function.
package supereasy

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/supereasy-dev/super-easy-in-app-purchase/application/plugin"
	"github.com/supereasy-dev/super-easy-in-app-purchase/application/reporter"
	"github.com/supereasy-dev/super-easy-in-app-purchase/channel"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
	"github.com/supereasy-dev/super-easy-in-app-purchase/infrastructure/osprobe"
)

const (
	// ChannelName is the channel the reporter registers under.
	ChannelName = "super_easy_in_app_purchase"

	// Version of the plugin.
	Version = "1.0.0"
)

type registerConfig struct {
	probe      ports.VersionProbe
	logger     *slog.Logger
	metrics    *channel.Metrics
	middleware []channel.Middleware
}

// RegisterOption configures Register.
type RegisterOption func(*registerConfig)

// WithProbe replaces the native OS probe.
func WithProbe(probe ports.VersionProbe) RegisterOption {
	return func(c *registerConfig) {
		c.probe = probe
	}
}

// WithLogger sets the logger used for call logging (default: slog.Default()).
func WithLogger(logger *slog.Logger) RegisterOption {
	return func(c *registerConfig) {
		c.logger = logger
	}
}

// WithMetrics records call counts and durations in m.
func WithMetrics(m *channel.Metrics) RegisterOption {
	return func(c *registerConfig) {
		c.metrics = m
	}
}

// WithMiddleware adds middleware inside logging and metrics, outside panic recovery.
func WithMiddleware(mw ...channel.Middleware) RegisterOption {
	return func(c *registerConfig) {
		c.middleware = append(c.middleware, mw...)
	}
}

// Register builds a registry with the reporter bound to cfg.Channel.
// Every call is logged and protected by panic recovery; a failing OS probe
// yields an UNAVAILABLE envelope rather than a crash.
func Register(cfg Config, opts ...RegisterOption) (*channel.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := registerConfig{}
	for _, opt := range opts {
		opt(&rc)
	}
	if rc.probe == nil {
		rc.probe = NewProbe(cfg)
	}

	// The outer recovery covers the logging, metrics and caller middleware;
	// the inner one lets them observe a handler panic as INTERNAL_ERROR.
	mw := []channel.Middleware{channel.PanicRecoveryMiddleware(), channel.LoggingMiddleware(rc.logger)}
	if rc.metrics != nil {
		mw = append(mw, channel.MetricsMiddleware(rc.metrics))
	}
	mw = append(mw, rc.middleware...)
	mw = append(mw, channel.PanicRecoveryMiddleware())

	return channel.NewRegistry(
		channel.WithMiddleware(mw...),
		channel.WithChannel(cfg.Channel, NewReporter(cfg, rc.probe)),
	)
}

// NewReporter creates the reporter described by cfg over probe.
func NewReporter(cfg Config, probe ports.VersionProbe) *reporter.Reporter {
	return reporter.New(probe,
		reporter.WithPlatformLabel(cfg.PlatformLabel),
		reporter.WithStrictDispatch(cfg.StrictDispatch),
		reporter.WithChannelName(cfg.Channel),
	)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *channel.Registry
	defaultErr      error
)

// DefaultRegistry registers the channel with DefaultConfig. The registration
// runs once per process; later calls return the same registry.
func DefaultRegistry() (*channel.Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Register(DefaultConfig())
	})
	return defaultRegistry, defaultErr
}

// PlatformVersion returns "<Label> <Version>" for the running OS, e.g. "iOS 17.4".
func PlatformVersion(ctx context.Context) (string, error) {
	return reporter.New(osprobe.Default()).Report(ctx)
}

// Definition describes the plugin configured by cfg.
func Definition(cfg Config) (*plugin.PluginDefinition, error) {
	def, err := plugin.DefinePlugin(plugin.PluginDef{
		Name:        ChannelName,
		Version:     Version,
		Description: "Reports the host operating system version over a message channel.",
		Config:      Config{},
	})
	if err != nil {
		return nil, err
	}

	def.RegisterChannel(cfg.Channel, "Answers calls with \"<platform> <os version>\".", !cfg.StrictDispatch)
	def.RegisterMethod(cfg.Channel, reporter.MethodGetPlatformVersion, "Returns the platform label and OS version, e.g. \"iOS 17.4\".")
	return def, nil
}

// Manifest is shorthand for Definition(cfg).Manifest().
func Manifest(cfg Config) (*entities.Manifest, error) {
	def, err := Definition(cfg)
	if err != nil {
		return nil, err
	}
	return def.Manifest(), nil
}

// NewProbe returns a static probe when the version is overridden, the native chain otherwise.
func NewProbe(cfg Config) ports.VersionProbe {
	if cfg.VersionOverride != "" {
		return osprobe.NewStaticProbe(entities.PlatformInfo{
			Label:    osprobe.Label(runtime.GOOS),
			Version:  cfg.VersionOverride,
			Platform: runtime.GOOS,
			Arch:     runtime.GOARCH,
		})
	}
	return osprobe.Default()
}
