package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Xarlan/zigbee/internal/zigbee/address"
	"github.com/Xarlan/zigbee/internal/zigbee/command"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// KindChoice holds the answers of the first compose step.
type KindChoice struct {
	Kind         string
	CommandID    string
	Layout       string
	NWKFrameType string
}

// DefaultKindChoice preselects a standard layout MAC command.
func DefaultKindChoice() *KindChoice {
	return &KindChoice{
		Kind:         string(frame.KindCommand),
		CommandID:    "1",
		Layout:       "standard",
		NWKFrameType: "0",
	}
}

// Args converts the answers into constructor arguments.
func (c *KindChoice) Args() (frame.Args, error) {
	args := frame.Args{Layout: c.Layout}
	switch frame.Kind(c.Kind) {
	case frame.KindCommand:
		id, err := strconv.Atoi(strings.TrimSpace(c.CommandID))
		if err != nil {
			return args, fmt.Errorf("command id %q is not a number", c.CommandID)
		}
		args.CommandID = id
	case frame.KindData:
		t, err := strconv.ParseInt(strings.TrimSpace(c.NWKFrameType), 0, 64)
		if err != nil {
			return args, fmt.Errorf("NWK frame type %q is not a number", c.NWKFrameType)
		}
		args.NWKFrameType = int(t)
	}
	return args, nil
}

// NewFrame constructs the frame the answers describe.
func (c *KindChoice) NewFrame() (frame.Frame, error) {
	args, err := c.Args()
	if err != nil {
		return nil, err
	}
	return frame.New(c.Kind, args)
}

func buildKindForm(choice *KindChoice) *huh.Form {
	kindOptions := make([]huh.Option[string], 0, len(frame.Kinds()))
	for _, k := range frame.Kinds() {
		kindOptions = append(kindOptions, huh.NewOption(kindLabel(k), string(k)))
	}

	kindGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Frame kind").
			Description("Choose the frame to compose.").
			Key("kind").
			Options(kindOptions...).
			Value(&choice.Kind),
	)

	commandGroup := huh.NewGroup(
		huh.NewInput().
			Title("Command id").
			Description(commandHelp()).
			Key("command_id").
			Validate(validateCommandID).
			Value(&choice.CommandID),
		huh.NewSelect[string]().
			Title("MAC header layout").
			Description("standard checks addressing modes, extended emits every set field.").
			Key("layout").
			Options(
				huh.NewOption("Standard", "standard"),
				huh.NewOption("Extended", "extended"),
			).
			Value(&choice.Layout),
	).WithHideFunc(func() bool { return choice.Kind != string(frame.KindCommand) })

	dataGroup := huh.NewGroup(
		huh.NewInput().
			Title("NWK frame type").
			Description("0 = data, 1 = NWK command.").
			Key("nwk_frame_type").
			Validate(ValidateFieldInput(spec.NWKFrameType)).
			Value(&choice.NWKFrameType),
	).WithHideFunc(func() bool { return choice.Kind != string(frame.KindData) })

	return huh.NewForm(kindGroup, commandGroup, dataGroup)
}

func kindLabel(k frame.Kind) string {
	switch k {
	case frame.KindData:
		return "NWK data frame"
	case frame.KindBeacon:
		return "MAC beacon"
	case frame.KindCommand:
		return "MAC command"
	case frame.KindAck:
		return "MAC acknowledgment"
	}
	return string(k)
}

func commandHelp() string {
	parts := make([]string, 0, 9)
	for id := 1; id <= 9; id++ {
		parts = append(parts, fmt.Sprintf("%d=%s", id, command.ID(id)))
	}
	return strings.Join(parts, ", ")
}

func validateCommandID(text string) error {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("enter a number from 1 to 9")
	}
	if _, err := command.New(id); err != nil {
		return err
	}
	return nil
}

// ValidateFieldInput returns the form validator for one field. Empty input
// leaves the field unset and is always accepted.
func ValidateFieldInput(name string) func(string) error {
	return func(text string) error {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}
		f, ok := spec.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown field %s", name)
		}
		switch f.Kind {
		case spec.KindAddress:
			_, err := address.Parse(text)
			return err
		case spec.KindIEEE:
			_, err := address.ParseExtended(text)
			return err
		}
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return fmt.Errorf("%q is not an integer", text)
		}
		if v > 1<<31-1 {
			return fmt.Errorf("value %d is too large", v)
		}
		_, err = f.Validate(int(v))
		return err
	}
}

// FieldInputs holds the text typed for each field of a frame.
type FieldInputs map[string]*string

// buildFieldForm asks for every assignable field of f. Fixed fields are
// skipped.
func buildFieldForm(f frame.Frame, inputs FieldInputs) *huh.Form {
	var fields []huh.Field
	for _, name := range f.Fields() {
		meta, ok := spec.Lookup(name)
		if !ok || meta.Fixed {
			continue
		}
		value := new(string)
		inputs[name] = value
		fields = append(fields, huh.NewInput().
			Title(name).
			Description(meta.Summary).
			Key(name).
			Validate(ValidateFieldInput(name)).
			Value(value))
	}
	if len(fields) == 0 {
		fields = append(fields, huh.NewNote().
			Title(kindLabel(f.Kind())).
			Description("This frame has no fields to set."))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// Apply assigns every non-empty input to f in sorted name order.
func (in FieldInputs) Apply(f frame.Frame) error {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		text := strings.TrimSpace(*in[name])
		if text == "" {
			continue
		}
		if err := f.Set(name, text); err != nil {
			return err
		}
	}
	return nil
}

// layoutOf reports the layout a command frame was built with.
func layoutOf(f frame.Frame) string {
	if c, ok := f.(*frame.Command); ok {
		return c.LayoutName
	}
	return ""
}
