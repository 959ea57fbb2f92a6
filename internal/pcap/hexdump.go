package pcap

// Hex formatting for frames

import (
	"fmt"
	"strings"
)

// HexDump creates an offset/hex/ASCII dump of frame data
func HexDump(data []byte, width int) string {
	if width <= 0 {
		width = 16
	}

	var sb strings.Builder
	for i := 0; i < len(data); i += width {
		sb.WriteString(fmt.Sprintf("%04x: ", i))

		for j := 0; j < width; j++ {
			if i+j < len(data) {
				sb.WriteString(fmt.Sprintf("%02x ", data[i+j]))
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString(" |")
		for j := 0; j < width && i+j < len(data); j++ {
			b := data[i+j]
			if b >= 32 && b < 127 {
				sb.WriteByte(b)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}

// FormatHex formats frame octets as space separated upper-case pairs, the
// form catalogs use for expect_hex.
func FormatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

// FormatFrameHex splits a frame into its header and payload for display.
// headerLen beyond the frame length shows everything as header.
func FormatFrameHex(data []byte, headerLen int) string {
	if headerLen <= 0 || headerLen >= len(data) {
		return "Frame (" + fmt.Sprint(len(data)) + " bytes):\n" + HexDump(data, 16)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Header (%d bytes):\n", headerLen))
	sb.WriteString(HexDump(data[:headerLen], 16))
	sb.WriteString(fmt.Sprintf("\nPayload (%d bytes):\n", len(data)-headerLen))
	sb.WriteString(HexDump(data[headerLen:], 16))
	return sb.String()
}
