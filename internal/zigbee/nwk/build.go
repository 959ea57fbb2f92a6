package nwk

import (
	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// NWK frame control bit offsets. Bits 2-5 (protocol version) and 13-15 are
// left zero.
const (
	shiftDiscoverRoute = 6
	shiftMulticast     = 8
	shiftSecurity      = 9
	shiftSourceRoute   = 10
	shiftDstIEEE       = 11
	shiftSrcIEEE       = 12
)

// ControlWord packs the 16 bit NWK frame control field.
func ControlWord(h *Header) (uint16, error) {
	bits := []struct {
		name  string
		value spec.Optional[uint8]
		shift uint
	}{
		{spec.NWKDiscoverRoute, h.discoverRoute, shiftDiscoverRoute},
		{spec.NWKMulticast, h.multicast, shiftMulticast},
		{spec.NWKSecurity, h.security, shiftSecurity},
		{spec.NWKSourceRoute, h.sourceRoute, shiftSourceRoute},
		{spec.NWKDstIEEEFlag, h.dstIEEEFlag, shiftDstIEEE},
		{spec.NWKSrcIEEEFlag, h.srcIEEEFlag, shiftSrcIEEE},
	}

	fc := uint16(h.frameType)
	for _, b := range bits {
		v, ok := b.value.Get()
		if !ok {
			return 0, zigbee.Fail(zigbee.KindIncompleteControlField, b.name, "must be set before packing the NWK frame control field")
		}
		fc |= uint16(v) << b.shift
	}
	return fc, nil
}

// Build emits the NWK control word followed by the destination network
// address, both low byte first.
//
// The source address, radius, sequence number, IEEE addresses and multicast
// control are held and validated but not emitted yet.
// TODO: emit the remaining NWK header fields once the frame kinds that carry
// them (source routing, multicast) are specified.
func Build(h *Header) ([]byte, error) {
	fc, err := ControlWord(h)
	if err != nil {
		return nil, err
	}
	dst, ok := h.dstAddr.Get()
	if !ok {
		return nil, zigbee.Fail(zigbee.KindMissingHeaderField, spec.NWKDstAddr, "destination network address is required")
	}
	out := make([]byte, 0, 4)
	out = codec.AppendUint16(out, fc)
	out = codec.AppendUint16(out, dst)
	return out, nil
}
