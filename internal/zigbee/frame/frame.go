// Package frame assembles complete frames from headers and payloads. Each
// frame kind is its own type; New is the factory keyed by kind name and
// Serialize turns a populated frame into wire octets.
package frame

import (
	"sort"

	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
	"github.com/Xarlan/zigbee/internal/zigbee/command"
	"github.com/Xarlan/zigbee/internal/zigbee/mac"
	"github.com/Xarlan/zigbee/internal/zigbee/nwk"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// Kind names a frame variant.
type Kind string

const (
	KindData    Kind = "data"
	KindBeacon  Kind = "mac_beacon"
	KindCommand Kind = "mac_cmd"
	KindAck     Kind = "mac_ack"
)

// Kinds lists every frame kind New accepts.
func Kinds() []Kind {
	return []Kind{KindData, KindBeacon, KindCommand, KindAck}
}

// Frame is one frame under construction. A Frame is owned by a single
// goroutine until it is serialized.
type Frame interface {
	Kind() Kind
	// Fields lists the names Set and SetInt accept.
	Fields() []string
	// SetInt assigns an integer field. Address fields take a short address.
	SetInt(name string, v int) error
	// Set assigns a field from text: integers in Go literal syntax, or
	// colon separated octets for extended addresses.
	Set(name, text string) error
	serialize() ([]byte, error)
}

// Args carries the per-kind constructor arguments.
type Args struct {
	// NWKFrameType selects the NWK frame type of a data frame.
	NWKFrameType int
	// CommandID selects the MAC command of a mac_cmd frame.
	CommandID int
	// Layout names the MAC header layout of a mac_cmd frame.
	Layout string
}

// New constructs an empty frame of the named kind.
func New(kind string, args Args) (Frame, error) {
	switch Kind(kind) {
	case KindData:
		return NewData(args.NWKFrameType)
	case KindBeacon:
		return NewBeacon(), nil
	case KindCommand:
		return NewCommand(args.CommandID, args.Layout)
	case KindAck:
		return &Ack{}, nil
	}
	return nil, zigbee.Fail(zigbee.KindUnknownFrameKind, "", "%q is not one of %s, %s, %s, %s", kind, KindData, KindBeacon, KindCommand, KindAck)
}

// Serialize returns the wire octets of f, or the first error from any header
// or payload builder, unwrapped. No partial output is returned.
func Serialize(f Frame) ([]byte, error) {
	out, err := f.serialize()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Data is a MAC data frame carrying an NWK header. Only the NWK header is
// serialized; the MAC header is held for inspection.
type Data struct {
	NWK *nwk.Header
	MAC *mac.Header
}

// NewData returns a data frame whose NWK header has the given frame type.
func NewData(nwkFrameType int) (*Data, error) {
	n, err := nwk.NewHeader(nwkFrameType)
	if err != nil {
		return nil, err
	}
	m, err := mac.NewHeader(int(spec.MACFrameData))
	if err != nil {
		return nil, err
	}
	return &Data{NWK: n, MAC: m}, nil
}

func (f *Data) Kind() Kind { return KindData }

func (f *Data) Fields() []string {
	out := make([]string, 0, len(nwkFields)+len(macFields))
	out = append(out, nwkFields...)
	return append(out, macFields...)
}

func (f *Data) SetInt(name string, v int) error {
	if ok, err := setNWKInt(f.NWK, name, v); ok {
		return err
	}
	if ok, err := setMACInt(f.MAC, name, v); ok {
		return err
	}
	return notAccepted(name, KindData)
}

func (f *Data) Set(name, text string) error {
	if ok, err := setNWKText(f.NWK, name, text); ok {
		return err
	}
	if ok, err := setMACText(f.MAC, name, text); ok {
		return err
	}
	return notAccepted(name, KindData)
}

func (f *Data) serialize() ([]byte, error) {
	return nwk.Build(f.NWK)
}

// Beacon is a MAC beacon frame. It carries the frame type and sequence
// number only.
type Beacon struct {
	MAC *mac.Header
}

// NewBeacon returns an empty beacon frame.
func NewBeacon() *Beacon {
	h, _ := mac.NewHeader(int(spec.MACFrameBeacon))
	return &Beacon{MAC: h}
}

func (f *Beacon) Kind() Kind       { return KindBeacon }
func (f *Beacon) Fields() []string { return []string{spec.MACSeqNum} }

func (f *Beacon) SetInt(name string, v int) error {
	if name != spec.MACSeqNum {
		return notAccepted(name, KindBeacon)
	}
	return f.MAC.SetSeqNum(v)
}

func (f *Beacon) Set(name, text string) error {
	if name != spec.MACSeqNum {
		return notAccepted(name, KindBeacon)
	}
	v, err := parseScalar(name, text)
	if err != nil {
		return err
	}
	return f.MAC.SetSeqNum(v)
}

func (f *Beacon) serialize() ([]byte, error) {
	seq, ok := f.MAC.SeqNum().Get()
	if !ok {
		return nil, zigbee.Fail(zigbee.KindMissingHeaderField, spec.MACSeqNum, "beacon needs a sequence number")
	}
	out := codec.AppendUint16(make([]byte, 0, 3), uint16(f.MAC.FrameType()))
	return append(out, seq), nil
}

// Command is a MAC command frame: a MAC header laid out by Layout followed
// by the command payload.
type Command struct {
	MAC        *mac.Header
	Payload    command.Payload
	Layout     mac.Layout
	LayoutName string
}

// NewCommand returns a command frame for the given command id. An empty
// layout name selects the standard layout.
func NewCommand(id int, layout string) (*Command, error) {
	p, err := command.New(id)
	if err != nil {
		return nil, err
	}
	l, err := mac.ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	if layout == "" {
		layout = mac.LayoutStandard
	}
	h, err := mac.NewHeader(int(spec.MACFrameCommand))
	if err != nil {
		return nil, err
	}
	return &Command{MAC: h, Payload: p, Layout: l, LayoutName: layout}, nil
}

func (f *Command) Kind() Kind { return KindCommand }

func (f *Command) Fields() []string {
	out := make([]string, 0, len(macFields)+4)
	out = append(out, macFields...)
	return append(out, f.Payload.Fields()...)
}

func (f *Command) SetInt(name string, v int) error {
	if ok, err := setMACInt(f.MAC, name, v); ok {
		return err
	}
	if contains(f.Payload.Fields(), name) {
		return f.Payload.Set(name, v)
	}
	return f.foreign(name)
}

func (f *Command) Set(name, text string) error {
	if ok, err := setMACText(f.MAC, name, text); ok {
		return err
	}
	if contains(f.Payload.Fields(), name) {
		v, err := parseScalar(name, text)
		if err != nil {
			return err
		}
		return f.Payload.Set(name, v)
	}
	return f.foreign(name)
}

func (f *Command) foreign(name string) error {
	if fd, ok := spec.Lookup(name); ok && fd.Layer == spec.LayerPayload {
		return zigbee.Fail(zigbee.KindUnknownField, name, "not a field of command %d (%s)", uint8(f.Payload.ID()), f.Payload.ID())
	}
	return notAccepted(name, KindCommand)
}

func (f *Command) serialize() ([]byte, error) {
	hdr, err := f.Layout(f.MAC)
	if err != nil {
		return nil, err
	}
	payload, err := command.Encode(f.Payload)
	if err != nil {
		return nil, err
	}
	return append(hdr, payload...), nil
}

// Ack is a MAC acknowledgment frame. It serializes to no octets.
type Ack struct{}

func (f *Ack) Kind() Kind       { return KindAck }
func (f *Ack) Fields() []string { return nil }

func (f *Ack) SetInt(name string, _ int) error { return notAccepted(name, KindAck) }
func (f *Ack) Set(name, _ string) error        { return notAccepted(name, KindAck) }

func (f *Ack) serialize() ([]byte, error) { return []byte{}, nil }

// Apply assigns fields in sorted name order and stops at the first error.
// Values are int or address text.
func Apply(f Frame, values map[string]any) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := setAny(f, name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func setAny(f Frame, name string, v any) error {
	switch x := v.(type) {
	case int:
		return f.SetInt(name, x)
	case int64:
		if x < -1<<31 || x > 1<<31-1 {
			return zigbee.Fail(zigbee.KindOutOfRange, name, "value %d is too large", x)
		}
		return f.SetInt(name, int(x))
	case uint64:
		if x > 1<<31-1 {
			return zigbee.Fail(zigbee.KindOutOfRange, name, "value %d is too large", x)
		}
		return f.SetInt(name, int(x))
	case float64:
		if x != float64(int(x)) {
			return zigbee.Fail(zigbee.KindOutOfRange, name, "value %v is not an integer", x)
		}
		return f.SetInt(name, int(x))
	case string:
		return f.Set(name, x)
	default:
		return zigbee.Fail(zigbee.KindInvalidAddressFormat, name, "unsupported value type %T", v)
	}
}
