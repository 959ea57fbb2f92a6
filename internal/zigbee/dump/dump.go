// Package dump renders frames under construction as bit-field diagrams.
// Unset fields show as x, so a dump is useful before a frame is complete.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Xarlan/zigbee/internal/zigbee/address"
	"github.com/Xarlan/zigbee/internal/zigbee/command"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
	"github.com/Xarlan/zigbee/internal/zigbee/mac"
	"github.com/Xarlan/zigbee/internal/zigbee/nwk"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// Styles colors the parts of a dump.
type Styles struct {
	Section lipgloss.Style
	Bits    lipgloss.Style
	Value   lipgloss.Style
	Unset   lipgloss.Style
	Label   lipgloss.Style
}

// PlainStyles renders without escape sequences.
func PlainStyles() Styles {
	s := lipgloss.NewStyle()
	return Styles{Section: s, Bits: s, Value: s, Unset: s, Label: s}
}

// ColorStyles returns the terminal palette.
func ColorStyles() Styles {
	return Styles{
		Section: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Bits:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Unset:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Printer writes dumps.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, styles Styles) *Printer {
	return &Printer{w: w, styles: styles}
}

// String renders f without styling.
func String(f frame.Frame) string {
	var b strings.Builder
	NewPrinter(&b, PlainStyles()).Frame(f)
	return b.String()
}

// Frame writes the headers and payload of f.
func (p *Printer) Frame(f frame.Frame) {
	switch x := f.(type) {
	case *frame.Data:
		p.NWK(x.NWK)
		p.section("NWK payload")
	case *frame.Beacon:
		p.section("MAC beacon")
		p.control(fieldBits{spec.MACFrameType, 0, 3, some(x.MAC.FrameType()), "Frame type (" + spec.MACFrameTypeName(x.MAC.FrameType()) + ")"})
		p.value8(x.MAC.SeqNum(), "Sequence number")
	case *frame.Command:
		p.MAC(x.MAC)
		p.Payload(x.Payload)
	case *frame.Ack:
		p.section("MAC acknowledgment")
	}
}

type fieldBits struct {
	name   string
	offset int
	width  int
	value  spec.Optional[uint8]
	label  string
}

func some(v uint8) spec.Optional[uint8] { return spec.Some(v) }

// MAC writes the MAC header.
func (p *Printer) MAC(h *mac.Header) {
	p.section("MAC header")
	p.control(fieldBits{spec.MACFrameType, 0, 3, some(h.FrameType()), "Frame type (" + spec.MACFrameTypeName(h.FrameType()) + ")"})
	p.control(fieldBits{spec.MACSecurity, 3, 1, h.Security(), "Security"})
	p.control(fieldBits{spec.MACPending, 4, 1, h.Pending(), "Pending"})
	p.control(fieldBits{spec.MACAckReq, 5, 1, h.AckReq(), "Acknowledge"})
	p.control(fieldBits{spec.MACIntraPAN, 6, 1, h.IntraPAN(), "IntraPAN (PAN ID compression)"})
	p.reserved(7, 3)
	p.control(fieldBits{spec.MACDstAddrMode, 10, 2, h.DstAddrMode(), modeLabel("Dst addr mode", h.DstAddrMode())})
	p.reserved(12, 2)
	p.control(fieldBits{spec.MACSrcAddrMode, 14, 2, h.SrcAddrMode(), modeLabel("Src addr mode", h.SrcAddrMode())})
	p.value8(h.SeqNum(), "Sequence number")
	p.value16(h.DstPANID(), "Destination PAN ID")
	p.addr(h.DstAddr(), "Destination addr")
	p.value16(h.SrcPANID(), "Source PAN ID")
	p.addr(h.SrcAddr(), "Source addr")
}

// NWK writes the NWK header.
func (p *Printer) NWK(h *nwk.Header) {
	p.section("NWK header")
	p.control(fieldBits{spec.NWKFrameType, 0, 2, some(h.FrameType()), "Frame type (" + spec.NWKFrameTypeName(h.FrameType()) + ")"})
	p.reserved(2, 4)
	p.control(fieldBits{spec.NWKDiscoverRoute, 6, 2, h.DiscoverRoute(), "Discover route"})
	p.control(fieldBits{spec.NWKMulticast, 8, 1, h.Multicast(), "Multicast"})
	p.control(fieldBits{spec.NWKSecurity, 9, 1, h.Security(), "Security"})
	p.control(fieldBits{spec.NWKSourceRoute, 10, 1, h.SourceRoute(), "Source route"})
	p.control(fieldBits{spec.NWKDstIEEEFlag, 11, 1, h.DstIEEEFlag(), "Dst IEEE addr"})
	p.control(fieldBits{spec.NWKSrcIEEEFlag, 12, 1, h.SrcIEEEFlag(), "Src IEEE addr"})
	p.reserved(13, 3)
	p.value8(h.ProtocolVer(), "Protocol version")
	p.value16(h.DstAddr(), "Dst addr")
	p.value16(h.SrcAddr(), "Src addr")
	p.value8(h.Radius(), "Radius")
	p.value8(h.SeqNum(), "Sequence number")
	p.addr(h.DstIEEEAddr(), "Dst IEEE addr")
	p.addr(h.SrcIEEEAddr(), "Src IEEE addr")
	p.value8(h.MulticastCtrl(), "Multicast control")
}

// Payload writes a MAC command payload.
func (p *Printer) Payload(pl command.Payload) {
	p.section("MAC payload")
	id := pl.ID()
	p.line(p.styles.Value.Render(fmt.Sprintf("%4d", uint8(id))), "command id: "+id.String())
	for _, name := range pl.Fields() {
		v, _ := pl.Get(name)
		f := spec.MustLookup(name)
		if f.Bits > 8 {
			p.value16(v, "[payload] "+f.Summary)
			continue
		}
		p.value8(narrow(v), "[payload] "+f.Summary)
	}
}

func narrow(o spec.Optional[uint16]) spec.Optional[uint8] {
	if v, ok := o.Get(); ok {
		return spec.Some(uint8(v))
	}
	return spec.Optional[uint8]{}
}

func modeLabel(label string, mode spec.Optional[uint8]) string {
	if v, ok := mode.Get(); ok {
		return label + " (" + spec.AddrModeName(v) + ")"
	}
	return label
}

func (p *Printer) section(title string) {
	fmt.Fprintln(p.w, p.styles.Section.Render("### ["+title+"] ###"))
}

func (p *Printer) control(f fieldBits) {
	p.bitLine(Pattern(f.offset, f.width, f.value), f.label)
}

func (p *Printer) reserved(offset, width int) {
	p.bitLine(Pattern(offset, width, spec.Optional[uint8]{}), "Reserved")
}

func (p *Printer) bitLine(pattern, label string) {
	fmt.Fprintf(p.w, "   %s %s\n", p.styles.Bits.Render(pattern), p.styles.Label.Render(label))
}

func (p *Printer) value8(o spec.Optional[uint8], label string) {
	if v, ok := o.Get(); ok {
		p.line(p.styles.Value.Render(fmt.Sprintf("%4d", v)), label)
		return
	}
	p.line(p.styles.Unset.Render("xxxx"), label)
}

func (p *Printer) value16(o spec.Optional[uint16], label string) {
	if v, ok := o.Get(); ok {
		p.line(p.styles.Value.Render(fmt.Sprintf("%04X", v)), label)
		return
	}
	p.line(p.styles.Unset.Render("xxxx"), label)
}

func (p *Printer) addr(a address.Address, label string) {
	switch {
	case a.IsExtended():
		p.line(p.styles.Value.Render(a.String()), label)
	case a.IsShort():
		v, _ := a.Short()
		p.line(p.styles.Value.Render(fmt.Sprintf("%04X", v)), label)
	default:
		p.line(p.styles.Unset.Render("xxxx"), label)
	}
}

func (p *Printer) line(value, label string) {
	fmt.Fprintf(p.w, "%20s %s %s\n", "", value, p.styles.Label.Render(label))
}

// Pattern renders a 16 bit control word diagram, most significant bit
// first in nibble groups, with the field at [offset, offset+width) shown as
// its binary value or x when unset. Other bits show as dots.
func Pattern(offset, width int, value spec.Optional[uint8]) string {
	cells := make([]byte, 16)
	for i := range cells {
		cells[i] = '.'
	}
	v, set := value.Get()
	for bit := 0; bit < width; bit++ {
		c := byte('x')
		if set {
			c = '0' + (v>>uint(bit))&1
		}
		cells[15-(offset+bit)] = c
	}
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
	}
	return b.String()
}
