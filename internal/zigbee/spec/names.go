package spec

import "fmt"

// MAC frame types (frame control bits 0-2).
const (
	MACFrameBeacon  uint8 = 0x0
	MACFrameData    uint8 = 0x1
	MACFrameAck     uint8 = 0x2
	MACFrameCommand uint8 = 0x3
)

// NWK frame types (NWK frame control bits 0-1).
const (
	NWKFrameData     uint8 = 0x0
	NWKFrameCommand  uint8 = 0x1
	NWKFrameInterPAN uint8 = 0x3
)

// Addressing modes shared by the destination and source mode sub-fields.
const (
	AddrModeNone     uint8 = 0x0
	AddrModeReserved uint8 = 0x1
	AddrModeShort    uint8 = 0x2
	AddrModeExtended uint8 = 0x3
)

var macFrameTypeNames = map[uint8]string{
	MACFrameBeacon:  "Beacon",
	MACFrameData:    "Data",
	MACFrameAck:     "Acknowledgment",
	MACFrameCommand: "MAC command",
}

var nwkFrameTypeNames = map[uint8]string{
	NWKFrameData:     "Data",
	NWKFrameCommand:  "NWK command",
	0x2:              "Reserved",
	NWKFrameInterPAN: "Inter-PAN",
}

var addrModeNames = map[uint8]string{
	AddrModeNone:     "PAN identifier and address field are not present",
	AddrModeReserved: "Reserved",
	AddrModeShort:    "Address field contains a 16 bit short address",
	AddrModeExtended: "Address field contains a 64 bit extended address",
}

var commandNames = map[uint8]string{
	0x1: "Association request",
	0x2: "Association response",
	0x3: "Disassociation notification",
	0x4: "Data request",
	0x5: "PAN ID conflict notification",
	0x6: "Orphan notification",
	0x7: "Beacon request",
	0x8: "Coordinator realignment",
	0x9: "GTS request",
}

// MACFrameTypeName returns a display name for a MAC frame type.
func MACFrameTypeName(t uint8) string {
	return lookupName(macFrameTypeNames, t)
}

// NWKFrameTypeName returns a display name for a NWK frame type.
func NWKFrameTypeName(t uint8) string {
	return lookupName(nwkFrameTypeNames, t)
}

// AddrModeName describes an addressing mode.
func AddrModeName(mode uint8) string {
	return lookupName(addrModeNames, mode)
}

// CommandName returns the display name of a MAC command id.
func CommandName(id uint8) string {
	return lookupName(commandNames, id)
}

// IsKnownCommand reports whether id is one of the recognized MAC command ids.
func IsKnownCommand(id uint8) bool {
	_, ok := commandNames[id]
	return ok
}

func lookupName(names map[uint8]string, v uint8) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", v)
}
