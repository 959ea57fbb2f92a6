package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// globalFlags are persistent flags shared by every subcommand.
var globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zbframe",
		Short: "IEEE 802.15.4 / Zigbee frame builder",
		Long: `zbframe builds IEEE 802.15.4 MAC and Zigbee NWK frames field by field.

Every field is range checked and never clamped. Frames print as hex, JSON or
a bit-field dump, and can be written to pcap captures for Wireshark.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "", "Config file (default ./zbframe.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.logLevel, "log-level", "", "Log level override: silent, error, info, verbose, debug")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newComposeCmd())
	rootCmd.AddCommand(newPcapDumpCmd())

	// Custom help command
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			desc := cmd.Long
			if desc == "" {
				desc = cmd.Short
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s", desc, cmd.UsageString())
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Usage:\n  %s <command> [arguments] [options]\n\n", cmd.Name())
		fmt.Fprintf(out, "Available Commands:\n")
		for _, subCmd := range cmd.Commands() {
			if !subCmd.Hidden {
				fmt.Fprintf(out, "  %-15s %s\n", subCmd.Name(), subCmd.Short)
			}
		}
		fmt.Fprintf(out, "\nUse \"%s help <command>\" for more information about a command.\n", cmd.Name())
	})

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
