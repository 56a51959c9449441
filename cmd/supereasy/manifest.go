package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	supereasy "github.com/supereasy-dev/super-easy-in-app-purchase"
	"gopkg.in/yaml.v3"
)

func (a *app) manifestCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Print the plugin manifest.",
		Long: `Print the plugin manifest: name, version, registered channels with
their known methods and the JSON schema of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := supereasy.Manifest(a.cfg)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return err
			}

			switch format {
			case "json":
				_, err = fmt.Fprintln(a.stdout, string(data))
				return err
			case "yaml":
				// Round-trip through a map so the embedded schema renders as YAML.
				var doc map[string]any
				if err := json.Unmarshal(data, &doc); err != nil {
					return err
				}
				enc := yaml.NewEncoder(a.stdout)
				enc.SetIndent(2)
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format (json or yaml)")
	return cmd
}
