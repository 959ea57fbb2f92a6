package main

import (
	"github.com/spf13/cobra"

	"github.com/Xarlan/zigbee/internal/app"
)

type catalogFlags struct {
	file   string
	keys   []string
	kind   string
	search string
	list   bool
	check  bool
	output outputFlags
}

func newCatalogCmd() *cobra.Command {
	flags := &catalogFlags{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build, list or check frames from a catalog file",
		Long: `Build the named frames of a YAML or TOML catalog.

A catalog lists frames by key with their kind, command id, layout and field
values. --check builds every frame and compares it with its expect_hex.`,
		Example: `  zbframe catalog --file catalogs/samples.yaml --list
  zbframe catalog --file catalogs/samples.yaml --check
  zbframe catalog --file catalogs/samples.yaml --key beacon --key coordinator_realignment
  zbframe catalog --file catalogs/samples.yaml --pcap samples.pcap --fcs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if flags.file == "" && len(args) > 0 {
				flags.file = args[0]
			}
			if flags.file == "" {
				return missingFlagError(cmd, "--file")
			}
			return runCatalog(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Catalog file, .yaml or .toml (required)")
	cmd.Flags().StringArrayVar(&flags.keys, "key", nil, "Build only this key (repeatable)")
	cmd.Flags().StringVar(&flags.kind, "kind", "", "Only frames of this kind")
	cmd.Flags().StringVar(&flags.search, "search", "", "Only frames whose key or description matches")
	cmd.Flags().BoolVar(&flags.list, "list", false, "List entries instead of building them")
	cmd.Flags().BoolVar(&flags.check, "check", false, "Build every entry and compare with expect_hex")
	addOutputFlags(cmd, &flags.output)

	return cmd
}

func runCatalog(cmd *cobra.Command, flags *catalogFlags) error {
	return app.RunCatalog(app.CatalogOptions{
		ConfigPath: globalFlags.configPath,
		File:       flags.file,
		Keys:       flags.keys,
		Kind:       flags.kind,
		Search:     flags.search,
		List:       flags.list,
		Check:      flags.check,
		PcapPath:   flags.output.pcap,
		Output:     flags.output.overrides(),
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	})
}
