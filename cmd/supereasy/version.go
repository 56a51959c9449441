package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	supereasy "github.com/supereasy-dev/super-easy-in-app-purchase"
)

func (a *app) versionCommand() *cobra.Command {
	var details, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the platform version string.",
		Long: `Show the string the channel answers with: the platform label, a space
and the OS release version.

With --details the label, version, semver form, kernel and architecture
are listed separately:

    $ supereasy version --details
    macOS 14.4.1
    - os/label: macOS
    - os/version: 14.4.1
    - os/semver: 14.4.1
    - os/kernel: 23.4.0 (arm64)
    - os/type: darwin
    - probe: sysctl
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := supereasy.NewReporter(a.cfg, a.versionProbe())
			ctx := cmd.Context()

			if !details && !asJSON {
				v, err := r.Report(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, v)
				return err
			}

			d, err := r.Details(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}

			fmt.Fprintln(a.stdout, d.String())
			fmt.Fprintf(a.stdout, "- os/label: %s\n", d.Label)
			fmt.Fprintf(a.stdout, "- os/version: %s\n", d.Version)
			if d.SemVer != "" {
				fmt.Fprintf(a.stdout, "- os/semver: %s\n", d.SemVer)
			}
			if d.Kernel != "" {
				fmt.Fprintf(a.stdout, "- os/kernel: %s (%s)\n", d.Kernel, d.Arch)
			}
			if d.Platform != "" {
				fmt.Fprintf(a.stdout, "- os/type: %s\n", d.Platform)
			}
			fmt.Fprintf(a.stdout, "- probe: %s\n", d.Source)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&details, "details", false, "List the version components")
	flags.BoolVar(&asJSON, "json", false, "Print the version components as JSON")
	return cmd
}
