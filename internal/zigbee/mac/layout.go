package mac

import (
	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/address"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// Layout lays out a MAC header as octets.
type Layout func(h *Header) ([]byte, error)

// Layout names accepted by ParseLayout.
const (
	LayoutStandard = "standard"
	LayoutExtended = "extended"
)

// ParseLayout returns the layout registered under name. An empty name
// selects the standard layout.
func ParseLayout(name string) (Layout, error) {
	switch name {
	case "", LayoutStandard:
		return Standard, nil
	case LayoutExtended:
		return Extended, nil
	default:
		return nil, zigbee.Fail(zigbee.KindUnknownLayout, "", "%q is not a MAC header layout (want %s or %s)", name, LayoutStandard, LayoutExtended)
	}
}

// Standard lays out the header as IEEE 802.15.4 prescribes: the PAN id and
// address fields are present only when the matching addressing mode is
// non-zero, the source PAN id is elided under PAN id compression, and each
// present address must agree with its mode. The sequence number is not
// emitted.
func Standard(h *Header) ([]byte, error) {
	out, err := AppendControl(make([]byte, 0, maxLen(h)), h)
	if err != nil {
		return nil, err
	}

	dstMode := h.dstAddrMode.OrZero()
	srcMode := h.srcAddrMode.OrZero()

	// 7.2.1.3 Destination PAN identifier, 7.2.1.4 Destination address
	if dstMode != spec.AddrModeNone {
		if err := checkMode("dst", spec.MACDstAddr, dstMode, h.dstAddr); err != nil {
			return nil, err
		}
		pan, ok := h.dstPANID.Get()
		if !ok {
			return nil, zigbee.Fail(zigbee.KindMissingHeaderField, spec.MACDstPANID, "required when %s is %d", spec.MACDstAddrMode, dstMode)
		}
		out = codec.AppendUint16(out, pan)
		out = h.dstAddr.AppendWire(out)
	}

	// 7.2.1.5 Source PAN identifier
	if srcMode != spec.AddrModeNone && h.intraPAN.OrZero() == 0 {
		pan, ok := h.srcPANID.Get()
		if !ok {
			return nil, zigbee.Fail(zigbee.KindMissingHeaderField, spec.MACSrcPANID, "required when %s is %d and %s is 0", spec.MACSrcAddrMode, srcMode, spec.MACIntraPAN)
		}
		out = codec.AppendUint16(out, pan)
	}

	// 7.2.1.6 Source address
	if srcMode != spec.AddrModeNone {
		if err := checkMode("src", spec.MACSrcAddr, srcMode, h.srcAddr); err != nil {
			return nil, err
		}
		out = h.srcAddr.AppendWire(out)
	}

	return out, nil
}

// maxLen bounds the header length: control word, both PAN ids and both
// addresses.
func maxLen(h *Header) int {
	return 2 + 2 + h.dstAddr.WireLen() + 2 + h.srcAddr.WireLen()
}

func checkMode(side, field string, mode uint8, a address.Address) error {
	if (mode == spec.AddrModeExtended && a.IsShort()) || (mode == spec.AddrModeShort && a.IsExtended()) {
		return zigbee.Fail(zigbee.KindAddressModeConflict, side, "%s_addr_mode %d conflicts with %s address %s", side, mode, a.Kind(), a)
	}
	if a.IsAbsent() {
		return zigbee.Fail(zigbee.KindMissingHeaderField, field, "required when %s_addr_mode is %d", side, mode)
	}
	return nil
}

// Extended lays out every PAN id and address that is set, whatever the
// addressing modes say, and skips the mode/address consistency check. It
// builds frames whose control word and addressing disagree on purpose.
func Extended(h *Header) ([]byte, error) {
	out, err := AppendControl(make([]byte, 0, maxLen(h)), h)
	if err != nil {
		return nil, err
	}
	if pan, ok := h.dstPANID.Get(); ok {
		out = codec.AppendUint16(out, pan)
	}
	out = h.dstAddr.AppendWire(out)
	if pan, ok := h.srcPANID.Get(); ok {
		out = codec.AppendUint16(out, pan)
	}
	out = h.srcAddr.AppendWire(out)
	return out, nil
}
