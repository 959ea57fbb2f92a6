// Package mac builds IEEE 802.15.4 MAC headers.
package mac

import (
	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/address"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// Header holds the MAC header fields of one outgoing frame. Every field
// starts unset and is assigned through a validating setter; the frame type
// is fixed at construction. A Header must not be shared between goroutines
// while it is being populated.
type Header struct {
	frameType uint8

	security    spec.Optional[uint8]
	pending     spec.Optional[uint8]
	ackReq      spec.Optional[uint8]
	intraPAN    spec.Optional[uint8]
	dstAddrMode spec.Optional[uint8]
	srcAddrMode spec.Optional[uint8]

	seqNum spec.Optional[uint8]

	dstPANID spec.Optional[uint16]
	dstAddr  address.Address
	srcPANID spec.Optional[uint16]
	srcAddr  address.Address
}

// NewHeader returns an empty header for the given 3 bit frame type.
func NewHeader(frameType int) (*Header, error) {
	v, err := spec.Check(spec.MACFrameType, frameType)
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

func withField(err error, name string) error {
	if e, ok := err.(*zigbee.Error); ok && e.Field == "" {
		e.Field = name
	}
	return err
}

// Scalar setters. Each checks v against the bit width of its field and
// returns an OutOfRange error naming the field, leaving the header unchanged
// on failure.
func (h *Header) SetSecurity(v int) error    { return setU8(&h.security, spec.MACSecurity, v) }
func (h *Header) SetPending(v int) error     { return setU8(&h.pending, spec.MACPending, v) }
func (h *Header) SetAckReq(v int) error      { return setU8(&h.ackReq, spec.MACAckReq, v) }
func (h *Header) SetIntraPAN(v int) error    { return setU8(&h.intraPAN, spec.MACIntraPAN, v) }
func (h *Header) SetDstAddrMode(v int) error { return setU8(&h.dstAddrMode, spec.MACDstAddrMode, v) }
func (h *Header) SetSrcAddrMode(v int) error { return setU8(&h.srcAddrMode, spec.MACSrcAddrMode, v) }
func (h *Header) SetSeqNum(v int) error      { return setU8(&h.seqNum, spec.MACSeqNum, v) }
func (h *Header) SetDstPANID(v int) error    { return setU16(&h.dstPANID, spec.MACDstPANID, v) }
func (h *Header) SetSrcPANID(v int) error    { return setU16(&h.srcPANID, spec.MACSrcPANID, v) }

// SetDstAddr assigns the destination address. Consistency with the
// destination addressing mode is checked when the standard layout is built,
// since mode and address may be set in either order.
func (h *Header) SetDstAddr(a address.Address) { h.dstAddr = a }

// SetSrcAddr assigns the source address.
func (h *Header) SetSrcAddr(a address.Address) { h.srcAddr = a }

// SetDstAddrShort assigns a short destination address.
func (h *Header) SetDstAddrShort(v int) error {
	a, err := address.FromShort(v)
	if err != nil {
		return withField(err, spec.MACDstAddr)
	}
	h.dstAddr = a
	return nil
}

// SetSrcAddrShort assigns a short source address.
func (h *Header) SetSrcAddrShort(v int) error {
	a, err := address.FromShort(v)
	if err != nil {
		return withField(err, spec.MACSrcAddr)
	}
	h.srcAddr = a
	return nil
}

// SetDstAddrText parses and assigns a destination address.
func (h *Header) SetDstAddrText(s string) error {
	a, err := address.Parse(s)
	if err != nil {
		return withField(err, spec.MACDstAddr)
	}
	h.dstAddr = a
	return nil
}

// SetSrcAddrText parses and assigns a source address.
func (h *Header) SetSrcAddrText(s string) error {
	a, err := address.Parse(s)
	if err != nil {
		return withField(err, spec.MACSrcAddr)
	}
	h.srcAddr = a
	return nil
}

// Getters. Unset scalars read as absent; an unset address is address.None.
func (h *Header) FrameType() uint8                  { return h.frameType }
func (h *Header) Security() spec.Optional[uint8]    { return h.security }
func (h *Header) Pending() spec.Optional[uint8]     { return h.pending }
func (h *Header) AckReq() spec.Optional[uint8]      { return h.ackReq }
func (h *Header) IntraPAN() spec.Optional[uint8]    { return h.intraPAN }
func (h *Header) DstAddrMode() spec.Optional[uint8] { return h.dstAddrMode }
func (h *Header) SrcAddrMode() spec.Optional[uint8] { return h.srcAddrMode }
func (h *Header) SeqNum() spec.Optional[uint8]      { return h.seqNum }
func (h *Header) DstPANID() spec.Optional[uint16]   { return h.dstPANID }
func (h *Header) SrcPANID() spec.Optional[uint16]   { return h.srcPANID }
func (h *Header) DstAddr() address.Address          { return h.dstAddr }
func (h *Header) SrcAddr() address.Address          { return h.srcAddr }
