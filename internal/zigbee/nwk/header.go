// Package nwk builds Zigbee network layer headers.
package nwk

import (
	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/address"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// Header holds the NWK header fields of one outgoing frame.
type Header struct {
	frameType uint8

	protocolVer   spec.Optional[uint8]
	discoverRoute spec.Optional[uint8]
	multicast     spec.Optional[uint8]
	security      spec.Optional[uint8]
	sourceRoute   spec.Optional[uint8]
	dstIEEEFlag   spec.Optional[uint8]
	srcIEEEFlag   spec.Optional[uint8]

	dstAddr       spec.Optional[uint16]
	srcAddr       spec.Optional[uint16]
	radius        spec.Optional[uint8]
	seqNum        spec.Optional[uint8]
	dstIEEEAddr   address.Address
	srcIEEEAddr   address.Address
	multicastCtrl spec.Optional[uint8]
}

// NewHeader returns an empty header for the given 2 bit NWK frame type.
func NewHeader(frameType int) (*Header, error) {
	v, err := spec.Check(spec.NWKFrameType, frameType)
	if err != nil {
		return nil, err
	}
	return &Header{frameType: uint8(v)}, nil
}

func setU8(dst *spec.Optional[uint8], name string, v int) error {
	checked, err := spec.Check(name, v)
	if err != nil {
		return err
	}
	*dst = spec.Some(uint8(checked))
	return nil
}

func setU16(dst *spec.Optional[uint16], name string, v int) error {
	checked, err := spec.Check(name, v)
	if err != nil {
		return err
	}
	*dst = spec.Some(uint16(checked))
	return nil
}

// Scalar setters. Each checks v against the bit width of its field and
// returns an OutOfRange error naming the field, leaving the header unchanged
// on failure. The protocol version is held but not packed.
func (h *Header) SetProtocolVer(v int) error   { return setU8(&h.protocolVer, spec.NWKProtocolVer, v) }
func (h *Header) SetDiscoverRoute(v int) error { return setU8(&h.discoverRoute, spec.NWKDiscoverRoute, v) }
func (h *Header) SetMulticast(v int) error     { return setU8(&h.multicast, spec.NWKMulticast, v) }
func (h *Header) SetSecurity(v int) error      { return setU8(&h.security, spec.NWKSecurity, v) }
func (h *Header) SetSourceRoute(v int) error   { return setU8(&h.sourceRoute, spec.NWKSourceRoute, v) }
func (h *Header) SetDstIEEEFlag(v int) error   { return setU8(&h.dstIEEEFlag, spec.NWKDstIEEEFlag, v) }
func (h *Header) SetSrcIEEEFlag(v int) error   { return setU8(&h.srcIEEEFlag, spec.NWKSrcIEEEFlag, v) }
func (h *Header) SetDstAddr(v int) error       { return setU16(&h.dstAddr, spec.NWKDstAddr, v) }
func (h *Header) SetSrcAddr(v int) error       { return setU16(&h.srcAddr, spec.NWKSrcAddr, v) }
func (h *Header) SetRadius(v int) error        { return setU8(&h.radius, spec.NWKRadius, v) }
func (h *Header) SetSeqNum(v int) error        { return setU8(&h.seqNum, spec.NWKSeqNum, v) }
func (h *Header) SetMulticastCtrl(v int) error { return setU8(&h.multicastCtrl, spec.NWKMulticastCtrl, v) }

// SetDstIEEEAddr parses and assigns the destination IEEE address. Only the
// 64 bit form is accepted.
func (h *Header) SetDstIEEEAddr(s string) error {
	a, err := parseIEEE(spec.NWKDstIEEEAddr, s)
	if err != nil {
		return err
	}
	h.dstIEEEAddr = a
	return nil
}

// SetSrcIEEEAddr parses and assigns the source IEEE address.
func (h *Header) SetSrcIEEEAddr(s string) error {
	a, err := parseIEEE(spec.NWKSrcIEEEAddr, s)
	if err != nil {
		return err
	}
	h.srcIEEEAddr = a
	return nil
}

func parseIEEE(field, s string) (address.Address, error) {
	a, err := address.ParseExtended(s)
	if err != nil {
		if e, ok := err.(*zigbee.Error); ok {
			e.Field = field
		}
		return address.None, err
	}
	return a, nil
}

// Getters. Unset scalars read as absent; an unset IEEE address is
// address.None.
func (h *Header) FrameType() uint8                    { return h.frameType }
func (h *Header) ProtocolVer() spec.Optional[uint8]   { return h.protocolVer }
func (h *Header) DiscoverRoute() spec.Optional[uint8] { return h.discoverRoute }
func (h *Header) Multicast() spec.Optional[uint8]     { return h.multicast }
func (h *Header) Security() spec.Optional[uint8]      { return h.security }
func (h *Header) SourceRoute() spec.Optional[uint8]   { return h.sourceRoute }
func (h *Header) DstIEEEFlag() spec.Optional[uint8]   { return h.dstIEEEFlag }
func (h *Header) SrcIEEEFlag() spec.Optional[uint8]   { return h.srcIEEEFlag }
func (h *Header) DstAddr() spec.Optional[uint16]      { return h.dstAddr }
func (h *Header) SrcAddr() spec.Optional[uint16]      { return h.srcAddr }
func (h *Header) Radius() spec.Optional[uint8]        { return h.radius }
func (h *Header) SeqNum() spec.Optional[uint8]        { return h.seqNum }
func (h *Header) DstIEEEAddr() address.Address        { return h.dstIEEEAddr }
func (h *Header) SrcIEEEAddr() address.Address        { return h.srcIEEEAddr }
func (h *Header) MulticastCtrl() spec.Optional[uint8] { return h.multicastCtrl }
