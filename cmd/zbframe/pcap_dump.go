package main

import (
	"github.com/spf13/cobra"

	"github.com/Xarlan/zigbee/internal/app"
)

type pcapDumpFlags struct {
	inputFile string
	maxFrames int
}

func newPcapDumpCmd() *cobra.Command {
	flags := &pcapDumpFlags{}

	cmd := &cobra.Command{
		Use:   "pcap-dump",
		Short: "Hex dump the frames of an 802.15.4 capture",
		Long: `Print every frame of an IEEE 802.15.4 pcap as a hex dump.

Captures with link type 195 carry an FCS; it is verified and reported per
frame. A directory input dumps every .pcap file below it.`,
		Example: `  zbframe pcap-dump --input samples.pcap
  zbframe pcap-dump --input captures/ --max 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.inputFile == "" && len(args) > 0 {
				flags.inputFile = args[0]
			}
			if flags.inputFile == "" {
				return missingFlagError(cmd, "--input")
			}
			return app.RunPcapDump(app.PcapDumpOptions{
				Input:     flags.inputFile,
				MaxFrames: flags.maxFrames,
				Stdout:    cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&flags.inputFile, "input", "", "Input pcap file or directory (required)")
	cmd.Flags().IntVar(&flags.maxFrames, "max", 0, "Maximum frames per file (0 = all)")

	return cmd
}
