package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	supereasy "github.com/supereasy-dev/super-easy-in-app-purchase"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/ports"
	"github.com/supereasy-dev/super-easy-in-app-purchase/log"
)

// app holds state shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	strict     bool

	// probe replaces the configured probe when set (tests).
	probe ports.VersionProbe

	cfg    supereasy.Config
	logger *slog.Logger
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdout, stderr).rootCommand()
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "supereasy",
		Short: "Query the super_easy_in_app_purchase platform version channel",
		Long: `supereasy registers the platform version reporter on its channel and
calls it like a host application would.

    $ supereasy version
    Linux 6.8.0
    $ supereasy invoke getPlatformVersion
    {"result":"Linux 6.8.0"}
`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	addGlobalFlags(root.PersistentFlags(), a)
	root.AddCommand(
		a.versionCommand(),
		a.invokeCommand(),
		a.manifestCommand(),
	)
	return root
}

func addGlobalFlags(flags *pflag.FlagSet, a *app) {
	flags.StringVar(&a.configPath, "config", "", "YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.strict, "strict", false, "Answer only getPlatformVersion")
}

// setup loads the config and applies flag overrides.
func (a *app) setup(flags *pflag.FlagSet) error {
	cfg := supereasy.DefaultConfig()
	if a.configPath != "" {
		loaded, err := supereasy.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flags.Changed("strict") {
		cfg.StrictDispatch = a.strict
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = log.New(a.stderr, log.WithLevel(level))
	return nil
}

func (a *app) versionProbe() ports.VersionProbe {
	if a.probe != nil {
		return a.probe
	}
	return supereasy.NewProbe(a.cfg)
}
