// Package codec holds the octet helpers shared by the frame builders.
// IEEE 802.15.4 transmits every multi-octet field least significant octet first.
package codec

import (
	"encoding/binary"

	"github.com/sigurn/crc16"
)

// AppendUint16 appends value low byte first.
func AppendUint16(dst []byte, value uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], value)
	return append(dst, buf[:]...)
}

// AppendReversed appends src in reverse order. Extended addresses are
// written most significant octet first and sent least significant first.
func AppendReversed(dst []byte, src []byte) []byte {
	for i := len(src) - 1; i >= 0; i-- {
		dst = append(dst, src[i])
	}
	return dst
}

var fcsTable = crc16.MakeTable(crc16.CRC16_KERMIT)

// FCS returns the 802.15.4 frame check sequence (ITU-T CRC-16, reflected,
// zero initial value) over data.
func FCS(data []byte) uint16 {
	return crc16.Checksum(data, fcsTable)
}

// AppendFCS returns data followed by its FCS, low byte first.
func AppendFCS(data []byte) []byte {
	out := make([]byte, 0, len(data)+2)
	out = append(out, data...)
	return AppendUint16(out, FCS(data))
}
