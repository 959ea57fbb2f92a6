// Package address models the IEEE 802.15.4 address field: absent, a 16 bit
// short address, or a 64 bit extended (IEEE) address.
package address

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
)

// Kind tags an Address value.
type Kind uint8

const (
	Absent Kind = iota
	Short
	Extended
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Short:
		return "short"
	case Extended:
		return "extended"
	default:
		return "absent"
	}
}

// ExtendedLen is the octet count of an extended address.
const ExtendedLen = 8

// Address is a tagged address value. The zero value is Absent.
type Address struct {
	kind  Kind
	short uint16
	ext   [ExtendedLen]byte // most significant octet first, as written
}

// None is the absent address.
var None = Address{}

// FromShort returns a short address. Integers outside [0, 0x10000) fail with
// an invalid address format error.
func FromShort(v int) (Address, error) {
	if v < 0 || v > 0xFFFF {
		return Address{}, zigbee.Fail(zigbee.KindInvalidAddressFormat, "", "short address %d outside [0, 0x10000)", v)
	}
	return Address{kind: Short, short: uint16(v)}, nil
}

// FromExtended returns an extended address from octets given most
// significant first.
func FromExtended(octets [ExtendedLen]byte) Address {
	return Address{kind: Extended, ext: octets}
}

// ParseExtended parses "aa:bb:cc:dd:ee:ff:00:11". Exactly eight hexadecimal
// tokens are required, each in [0, 0xFF].
func ParseExtended(s string) (Address, error) {
	tokens := strings.Split(s, ":")
	if len(tokens) != ExtendedLen {
		return Address{}, zigbee.Fail(zigbee.KindInvalidAddressFormat, "", "%q: want %d octets, got %d", s, ExtendedLen, len(tokens))
	}
	var octets [ExtendedLen]byte
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
		if tok == "" {
			return Address{}, zigbee.Fail(zigbee.KindInvalidAddressFormat, "", "%q: empty octet at position %d", s, i)
		}
		v, err := strconv.ParseUint(tok, 16, 16)
		if err != nil {
			return Address{}, zigbee.Fail(zigbee.KindInvalidAddressFormat, "", "%q: octet %q is not hexadecimal", s, tokens[i])
		}
		if v > 0xFF {
			return Address{}, zigbee.Fail(zigbee.KindInvalidAddressFormat, "", "%q: octet %q exceeds 0xFF", s, tokens[i])
		}
		octets[i] = byte(v)
	}
	return FromExtended(octets), nil
}

// Parse accepts the textual forms of both address kinds: colon separated
// octets yield an extended address, an integer literal (decimal or 0x hex)
// yields a short address.
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		return ParseExtended(s)
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return Address{}, zigbee.Fail(zigbee.KindInvalidAddressFormat, "", "%q is neither a short address nor an extended address", s)
	}
	if v < 0 || v > 0xFFFF {
		return Address{}, zigbee.Fail(zigbee.KindInvalidAddressFormat, "", "short address %d outside [0, 0x10000)", v)
	}
	return Address{kind: Short, short: uint16(v)}, nil
}

// Kind returns the variant tag.
func (a Address) Kind() Kind { return a.kind }

// IsAbsent reports whether no address is held.
func (a Address) IsAbsent() bool { return a.kind == Absent }

// IsShort reports whether a holds a short address.
func (a Address) IsShort() bool { return a.kind == Short }

// IsExtended reports whether a holds an extended address.
func (a Address) IsExtended() bool { return a.kind == Extended }

// Short returns the short address value.
func (a Address) Short() (uint16, bool) {
	return a.short, a.kind == Short
}

// Extended returns the extended octets, most significant first.
func (a Address) Extended() ([ExtendedLen]byte, bool) {
	return a.ext, a.kind == Extended
}

// AppendWire appends the on-air octets: short addresses low byte first,
// extended addresses least significant octet first. Absent appends nothing.
func (a Address) AppendWire(dst []byte) []byte {
	switch a.kind {
	case Short:
		return codec.AppendUint16(dst, a.short)
	case Extended:
		return codec.AppendReversed(dst, a.ext[:])
	default:
		return dst
	}
}

// WireLen returns the number of octets AppendWire adds.
func (a Address) WireLen() int {
	switch a.kind {
	case Short:
		return 2
	case Extended:
		return ExtendedLen
	default:
		return 0
	}
}

// String formats short addresses as 0xNNNN and extended addresses as colon
// separated octets, most significant first.
func (a Address) String() string {
	switch a.kind {
	case Short:
		return fmt.Sprintf("0x%04X", a.short)
	case Extended:
		parts := make([]string, ExtendedLen)
		for i, b := range a.ext {
			parts[i] = fmt.Sprintf("%02X", b)
		}
		return strings.Join(parts, ":")
	default:
		return "absent"
	}
}
