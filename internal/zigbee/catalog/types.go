// Package catalog loads named frame templates from YAML or TOML files and
// builds them into frames.
package catalog

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Xarlan/zigbee/internal/zigbee/command"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
	"github.com/Xarlan/zigbee/internal/zigbee/mac"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// File is the on-disk catalog.
type File struct {
	Version int      `yaml:"version" toml:"version"`
	Name    string   `yaml:"name" toml:"name"`
	Frames  []*Entry `yaml:"frames" toml:"frames"`
}

// Entry is one named frame template. Field values are integers or address
// text.
type Entry struct {
	Key          string         `yaml:"key" toml:"key"`
	Kind         string         `yaml:"kind" toml:"kind"`
	CommandID    int            `yaml:"command_id,omitempty" toml:"command_id,omitempty"`
	NWKFrameType int            `yaml:"nwk_frame_type,omitempty" toml:"nwk_frame_type,omitempty"`
	Layout       string         `yaml:"layout,omitempty" toml:"layout,omitempty"`
	Description  string         `yaml:"description,omitempty" toml:"description,omitempty"`
	Fields       map[string]any `yaml:"fields,omitempty" toml:"fields,omitempty"`
	ExpectHex    string         `yaml:"expect_hex,omitempty" toml:"expect_hex,omitempty"`
}

// Args returns the frame constructor arguments of the entry.
func (e *Entry) Args() frame.Args {
	return frame.Args{NWKFrameType: e.NWKFrameType, CommandID: e.CommandID, Layout: e.Layout}
}

// Build constructs the frame and assigns its fields in sorted name order.
func (e *Entry) Build() (frame.Frame, error) {
	f, err := frame.New(e.Kind, e.Args())
	if err != nil {
		return nil, err
	}
	if err := frame.Apply(f, e.Fields); err != nil {
		return nil, err
	}
	return f, nil
}

// Serialize builds the frame and returns its wire octets.
func (e *Entry) Serialize() ([]byte, error) {
	f, err := e.Build()
	if err != nil {
		return nil, err
	}
	return frame.Serialize(f)
}

// Expected decodes expect_hex. Whitespace and colons between octets are
// ignored. It returns nil when no expectation is set.
func (e *Entry) Expected() ([]byte, error) {
	if strings.TrimSpace(e.ExpectHex) == "" {
		return nil, nil
	}
	clean := strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "").Replace(e.ExpectHex)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("expect_hex: %w", err)
	}
	return data, nil
}

// Validate checks the file structure: version, unique keys, known kinds,
// constructor arguments that fit the kind, and known field names. It does
// not build frames; see Check for that.
func (f *File) Validate() error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported catalog version: %d", f.Version)
	}

	keys := make(map[string]bool)
	for i, e := range f.Frames {
		if e == nil {
			return fmt.Errorf("frame %d: empty entry", i)
		}
		if e.Key == "" {
			return fmt.Errorf("frame %d: missing key", i)
		}
		if keys[e.Key] {
			return fmt.Errorf("frame %d: duplicate key %q", i, e.Key)
		}
		keys[e.Key] = true

		if err := validateEntry(e); err != nil {
			return fmt.Errorf("frame %q: %w", e.Key, err)
		}
	}
	return nil
}

func validateEntry(e *Entry) error {
	kind := frame.Kind(e.Kind)
	known := false
	for _, k := range frame.Kinds() {
		if k == kind {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown kind %q", e.Kind)
	}

	if kind == frame.KindCommand {
		if _, err := command.New(e.CommandID); err != nil {
			return err
		}
		if _, err := mac.ParseLayout(e.Layout); err != nil {
			return err
		}
	} else {
		if e.CommandID != 0 {
			return fmt.Errorf("command_id is only valid for %s frames", frame.KindCommand)
		}
		if e.Layout != "" {
			return fmt.Errorf("layout is only valid for %s frames", frame.KindCommand)
		}
	}
	if kind != frame.KindData && e.NWKFrameType != 0 {
		return fmt.Errorf("nwk_frame_type is only valid for %s frames", frame.KindData)
	}

	for name := range e.Fields {
		if _, ok := spec.Lookup(name); !ok {
			return fmt.Errorf("unknown field %q", name)
		}
	}

	if _, err := e.Expected(); err != nil {
		return err
	}
	return nil
}
