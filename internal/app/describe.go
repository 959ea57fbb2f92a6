package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Xarlan/zigbee/internal/zigbee/command"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// DescribeOptions selects what to describe.
type DescribeOptions struct {
	// Fields are described in full; empty lists every field.
	Fields []string
	// Layer limits the field list to mac, nwk or payload.
	Layer    string
	Commands bool
	Kinds    bool
	// ShowConfig prints the effective configuration loaded from ConfigPath.
	ShowConfig bool
	ConfigPath string
	Stdout     io.Writer
}

// RunDescribe prints field, command or configuration reference text.
func RunDescribe(opts DescribeOptions) error {
	w := opts.Stdout
	if w == nil {
		w = os.Stdout
	}

	switch {
	case opts.ShowConfig:
		return describeConfig(w, opts.ConfigPath)
	case opts.Commands:
		return describeCommands(w)
	case opts.Kinds:
		return describeKinds(w)
	case len(opts.Fields) > 0:
		for i, name := range opts.Fields {
			text, err := spec.Describe(name)
			if err != nil {
				return fmt.Errorf("unknown field %q (run zbframe describe for the list)", name)
			}
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprint(w, text)
		}
		return nil
	}
	return listFields(w, opts.Layer)
}

func listFields(w io.Writer, layer string) error {
	if layer != "" {
		switch spec.Layer(layer) {
		case spec.LayerMAC, spec.LayerNWK, spec.LayerPayload:
		default:
			return fmt.Errorf("unknown layer %q (want mac, nwk or payload)", layer)
		}
	}

	fmt.Fprintf(w, "%-24s %-8s %-6s %s\n", "FIELD", "LAYER", "WIDTH", "SUMMARY")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	count := 0
	for _, f := range spec.Fields() {
		if layer != "" && string(f.Layer) != layer {
			continue
		}
		width := fmt.Sprintf("%d", f.Bits)
		switch f.Kind {
		case spec.KindAddress:
			width = "16/64"
		case spec.KindIEEE:
			width = "64"
		}
		fmt.Fprintf(w, "%-24s %-8s %-6s %s\n", f.Name, f.Layer, width, f.Summary)
		count++
	}
	fmt.Fprintf(w, "\n%d fields\n", count)
	return nil
}

func describeCommands(w io.Writer) error {
	fmt.Fprintf(w, "%-4s %-32s %s\n", "ID", "COMMAND", "PAYLOAD FIELDS")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for id := 1; id <= 9; id++ {
		p, err := command.New(id)
		if err != nil {
			return err
		}
		fields := "-"
		if names := p.Fields(); len(names) > 0 {
			fields = strings.Join(names, ", ")
		}
		fmt.Fprintf(w, "%-4d %-32s %s\n", id, p.ID(), fields)
	}
	return nil
}

var kindSummaries = map[frame.Kind]string{
	frame.KindData:    "NWK data frame: NWK control word and destination address",
	frame.KindBeacon:  "MAC beacon: zero control word and sequence number",
	frame.KindCommand: "MAC command: MAC header and command payload",
	frame.KindAck:     "MAC acknowledgment: no octets",
}

func describeKinds(w io.Writer) error {
	for _, k := range frame.Kinds() {
		f, err := frame.New(string(k), frame.Args{CommandID: int(command.IDDataRequest)})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-10s %s\n", k, kindSummaries[k])
		if names := f.Fields(); len(names) > 0 {
			fmt.Fprintf(w, "           fields: %s\n", strings.Join(names, ", "))
		}
	}
	fmt.Fprintln(w, "\nmac_cmd frames also take the payload fields of their command id (zbframe describe --commands).")
	return nil
}

func describeConfig(w io.Writer, path string) error {
	cfg, resolved, err := resolveConfig(path)
	if err != nil {
		return err
	}
	if resolved == "" {
		resolved = "(defaults)"
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Fprintf(w, "# %s\n%s", resolved, data)
	return nil
}
