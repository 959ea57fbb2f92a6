package main

import (
	"github.com/spf13/cobra"

	"github.com/Xarlan/zigbee/internal/app"
)

type describeFlags struct {
	layer    string
	commands bool
	kinds    bool
}

func newDescribeCmd() *cobra.Command {
	flags := &describeFlags{}

	cmd := &cobra.Command{
		Use:   "describe [field ...]",
		Short: "Describe fields, commands and frame kinds",
		Long: `Describe what a field means, its width and its legal values.

With no field names every field is listed. --commands lists the MAC command
ids with their payload fields, --kinds the frame kinds. --config prints the
effective configuration.`,
		Example: `  zbframe describe
  zbframe describe mac_dst_addr_mode nwk_fc_discover_route
  zbframe describe --layer payload
  zbframe describe --commands
  zbframe describe --config zbframe.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			return app.RunDescribe(app.DescribeOptions{
				Fields:     args,
				Layer:      flags.layer,
				Commands:   flags.commands,
				Kinds:      flags.kinds,
				ShowConfig: cmd.Flags().Changed("config"),
				ConfigPath: globalFlags.configPath,
				Stdout:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.layer, "layer", "", "Only fields of this layer: mac, nwk or payload")
	cmd.Flags().BoolVar(&flags.commands, "commands", false, "List MAC command ids")
	cmd.Flags().BoolVar(&flags.kinds, "kinds", false, "List frame kinds")

	return cmd
}
