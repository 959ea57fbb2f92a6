package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xarlan/zigbee/internal/app"
)

func handleHelpArg(cmd *cobra.Command, args []string) bool {
	if len(args) == 0 {
		return false
	}
	if strings.EqualFold(args[0], "help") {
		_ = cmd.Help()
		return true
	}
	return false
}

func missingFlagError(cmd *cobra.Command, flag string) error {
	_ = cmd.Help()
	return fmt.Errorf("required flag %s not set", flag)
}

// outputFlags are the frame output options shared by build, catalog and
// compose. They override the config file.
type outputFlags struct {
	format  string
	fcs     bool
	noColor bool
	pcap    string
}

func addOutputFlags(cmd *cobra.Command, flags *outputFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: hex, json or dump (default from config)")
	cmd.Flags().BoolVar(&flags.fcs, "fcs", false, "Append the 802.15.4 FCS to hex, json and pcap output")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable styled dump output")
	cmd.Flags().StringVar(&flags.pcap, "pcap", "", "Also write the frames to this pcap file")
}

func (f *outputFlags) overrides() app.OutputOverrides {
	return app.OutputOverrides{
		Format:   f.format,
		FCS:      f.fcs,
		NoColor:  f.noColor,
		LogLevel: globalFlags.logLevel,
	}
}
