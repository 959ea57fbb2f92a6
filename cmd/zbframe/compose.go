package main

import (
	"github.com/spf13/cobra"

	"github.com/Xarlan/zigbee/internal/app"
)

func newComposeCmd() *cobra.Command {
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a frame interactively",
		Long: `Open an interactive form: pick a frame kind, then fill in its fields.

Each field is checked as you type. The finished frame is shown as a bit-field
dump and can be copied to the clipboard; it is printed when the form exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunCompose(app.ComposeOptions{
				ConfigPath: globalFlags.configPath,
				Output:     flags.overrides(),
				PcapPath:   flags.pcap,
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			})
		},
	}

	addOutputFlags(cmd, flags)

	return cmd
}
