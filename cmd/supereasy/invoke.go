package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	supereasy "github.com/supereasy-dev/super-easy-in-app-purchase"
	"github.com/supereasy-dev/super-easy-in-app-purchase/channel"
	"github.com/supereasy-dev/super-easy-in-app-purchase/domain/entities"
)

func (a *app) invokeCommand() *cobra.Command {
	var channelName, args string

	cmd := &cobra.Command{
		Use:   "invoke <method>",
		Short: "Send a method call over the channel and print the envelope.",
		Long: `Register the reporter, send one method call and print the raw JSON
envelope. The command fails when the envelope carries an error.

    $ supereasy invoke doPurchase --args '{"sku":"gold"}'
    {"result":"Linux 6.8.0"}
    $ supereasy --strict invoke doPurchase
    {"error":{"code":"NOT_IMPLEMENTED",...}}
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			call := entities.NewMethodCall(positional[0])
			if args != "" {
				if !json.Valid([]byte(args)) {
					return fmt.Errorf("--args is not valid JSON: %s", args)
				}
				call.Arguments = json.RawMessage(args)
			}
			payload, err := channel.EncodeMethodCall(call)
			if err != nil {
				return err
			}

			reg, err := supereasy.Register(a.cfg,
				supereasy.WithProbe(a.versionProbe()),
				supereasy.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			name := channelName
			if name == "" {
				name = a.cfg.Channel
			}
			resp, err := reg.Invoke(cmd.Context(), name, payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(resp))

			result, err := channel.DecodeResult(resp)
			if err != nil {
				return err
			}
			if result.IsError() {
				return fmt.Errorf("call failed: %s", result.Error.Code)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&channelName, "channel", "", "Channel to call (default: configured channel)")
	flags.StringVar(&args, "args", "", "Method arguments as JSON")
	return cmd
}
