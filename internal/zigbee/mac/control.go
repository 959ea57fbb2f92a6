package mac

import (
	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// Frame control bit offsets.
const (
	shiftSecurity    = 3
	shiftPending     = 4
	shiftAckReq      = 5
	shiftIntraPAN    = 6
	shiftDstAddrMode = 10
	shiftSrcAddrMode = 14
)

type controlBit struct {
	name  string
	value spec.Optional[uint8]
	shift uint
}

// ControlWord packs the 16 bit MAC frame control field. Every sub-field must
// be set; reserved bits 7-9 and 12-13 stay zero.
func ControlWord(h *Header) (uint16, error) {
	bits := []controlBit{
		{spec.MACSecurity, h.security, shiftSecurity},
		{spec.MACPending, h.pending, shiftPending},
		{spec.MACAckReq, h.ackReq, shiftAckReq},
		{spec.MACIntraPAN, h.intraPAN, shiftIntraPAN},
		{spec.MACDstAddrMode, h.dstAddrMode, shiftDstAddrMode},
		{spec.MACSrcAddrMode, h.srcAddrMode, shiftSrcAddrMode},
	}

	fc := uint16(h.frameType)
	for _, b := range bits {
		v, ok := b.value.Get()
		if !ok {
			return 0, zigbee.Fail(zigbee.KindIncompleteControlField, b.name, "must be set before packing the frame control field")
		}
		fc |= uint16(v) << b.shift
	}
	return fc, nil
}

// AppendControl appends the packed control word, low byte first.
func AppendControl(dst []byte, h *Header) ([]byte, error) {
	fc, err := ControlWord(h)
	if err != nil {
		return dst, err
	}
	return codec.AppendUint16(dst, fc), nil
}
