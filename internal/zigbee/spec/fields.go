package spec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Xarlan/zigbee/internal/zigbee"
)

// Layer groups fields by the frame part that owns them.
type Layer string

const (
	LayerMAC     Layer = "mac"
	LayerNWK     Layer = "nwk"
	LayerPayload Layer = "payload"
)

// ValueKind says how a field value is written.
type ValueKind string

const (
	KindScalar  ValueKind = "scalar"  // n-bit unsigned integer
	KindAddress ValueKind = "address" // 16-bit short or 64-bit extended
	KindIEEE    ValueKind = "ieee"    // 64-bit extended only
)

// Field names accepted by the header and payload setters.
const (
	MACFrameType   = "mac_frame_type"
	MACSecurity    = "mac_security"
	MACPending     = "mac_pending"
	MACAckReq      = "mac_ack_req"
	MACIntraPAN    = "mac_intra_pan"
	MACDstAddrMode = "mac_dst_addr_mode"
	MACSrcAddrMode = "mac_src_addr_mode"
	MACSeqNum      = "mac_seq_num"
	MACDstPANID    = "mac_dst_pan_id"
	MACDstAddr     = "mac_dst_addr"
	MACSrcPANID    = "mac_src_pan_id"
	MACSrcAddr     = "mac_src_addr"

	NWKFrameType     = "nwk_fc_frame_type"
	NWKProtocolVer   = "nwk_fc_protocol_ver"
	NWKDiscoverRoute = "nwk_fc_discover_route"
	NWKMulticast     = "nwk_fc_multicast"
	NWKSecurity      = "nwk_fc_security"
	NWKSourceRoute   = "nwk_fc_source_route"
	NWKDstIEEEFlag   = "nwk_fc_dst_ieee_addr"
	NWKSrcIEEEFlag   = "nwk_fc_src_ieee_addr"
	NWKDstAddr       = "nwk_dst_addr"
	NWKSrcAddr       = "nwk_src_addr"
	NWKRadius        = "nwk_radius"
	NWKSeqNum        = "nwk_seq_num"
	NWKDstIEEEAddr   = "nwk_dst_ieee_addr"
	NWKSrcIEEEAddr   = "nwk_src_ieee_addr"
	NWKMulticastCtrl = "nwk_multicast_ctrl"

	PayloadCapability        = "p_capability"
	PayloadShortAddr         = "p_short_addr"
	PayloadAssociationStatus = "p_association_status"
	PayloadReason            = "p_reason"
	PayloadPANID             = "p_pan_id"
	PayloadCoordShortAddr    = "p_c_short_addr"
	PayloadLogicalChannel    = "p_logical_ch"
	PayloadGTSChar           = "p_gts_char"
)

// Field describes one settable field: its width, owner and meaning.
type Field struct {
	Name     string
	Layer    Layer
	Kind     ValueKind
	Bits     int    // width of scalar fields
	Offset   int    // bit offset inside the control word, -1 when not a control sub-field
	Summary  string // one-line description
	Values   map[uint8]string
	Commands []uint8 // command ids owning a payload field
	Fixed    bool    // set by the frame kind, not by callers
}

var fields = map[string]Field{}

func register(f Field) {
	fields[f.Name] = f
}

func bit(name string, layer Layer, offset int, summary string) Field {
	return Field{Name: name, Layer: layer, Kind: KindScalar, Bits: 1, Offset: offset, Summary: summary}
}

func scalar(name string, layer Layer, bits int, summary string) Field {
	return Field{Name: name, Layer: layer, Kind: KindScalar, Bits: bits, Offset: -1, Summary: summary}
}

func payload(name string, bits int, summary string, ids ...uint8) Field {
	f := scalar(name, LayerPayload, bits, summary)
	f.Commands = ids
	return f
}

func init() {
	register(Field{Name: MACFrameType, Layer: LayerMAC, Kind: KindScalar, Bits: 3, Offset: 0,
		Summary: "MAC frame type, fixed by the frame kind", Values: macFrameTypeNames, Fixed: true})
	register(bit(MACSecurity, LayerMAC, 3, "Security enabled: frame is protected by the MAC sublayer"))
	register(bit(MACPending, LayerMAC, 4, "Frame pending: sender has more data for the recipient"))
	register(bit(MACAckReq, LayerMAC, 5, "Acknowledgment request: recipient must send an ACK"))
	register(bit(MACIntraPAN, LayerMAC, 6, "IntraPAN (PAN ID compression): source PAN id is elided"))
	register(Field{Name: MACDstAddrMode, Layer: LayerMAC, Kind: KindScalar, Bits: 2, Offset: 10,
		Summary: "Destination addressing mode", Values: addrModeNames})
	register(Field{Name: MACSrcAddrMode, Layer: LayerMAC, Kind: KindScalar, Bits: 2, Offset: 14,
		Summary: "Source addressing mode", Values: addrModeNames})
	register(scalar(MACSeqNum, LayerMAC, 8, "MAC sequence number"))
	register(scalar(MACDstPANID, LayerMAC, 16, "Destination PAN identifier"))
	register(Field{Name: MACDstAddr, Layer: LayerMAC, Kind: KindAddress, Offset: -1,
		Summary: "Destination address: 16 bit short (0..0xFFFF) or 64 bit extended (aa:bb:cc:dd:ee:ff:00:11)"})
	register(scalar(MACSrcPANID, LayerMAC, 16, "Source PAN identifier"))
	register(Field{Name: MACSrcAddr, Layer: LayerMAC, Kind: KindAddress, Offset: -1,
		Summary: "Source address: 16 bit short (0..0xFFFF) or 64 bit extended (aa:bb:cc:dd:ee:ff:00:11)"})

	register(Field{Name: NWKFrameType, Layer: LayerNWK, Kind: KindScalar, Bits: 2, Offset: 0,
		Summary: "NWK frame type, fixed when the header is created", Values: nwkFrameTypeNames, Fixed: true})
	register(Field{Name: NWKProtocolVer, Layer: LayerNWK, Kind: KindScalar, Bits: 4, Offset: -1,
		Summary: "Protocol version (bits 2-5 are left zero when packing)"})
	register(Field{Name: NWKDiscoverRoute, Layer: LayerNWK, Kind: KindScalar, Bits: 2, Offset: 6,
		Summary: "Discover route: 0 suppress, 1 enable route discovery"})
	register(bit(NWKMulticast, LayerNWK, 8, "Multicast flag"))
	register(bit(NWKSecurity, LayerNWK, 9, "NWK security enabled"))
	register(bit(NWKSourceRoute, LayerNWK, 10, "Source route subframe present"))
	register(bit(NWKDstIEEEFlag, LayerNWK, 11, "Destination IEEE address present"))
	register(bit(NWKSrcIEEEFlag, LayerNWK, 12, "Source IEEE address present"))
	register(scalar(NWKDstAddr, LayerNWK, 16, "Destination network (short) address"))
	register(scalar(NWKSrcAddr, LayerNWK, 16, "Source network (short) address"))
	register(scalar(NWKRadius, LayerNWK, 8, "Radius: remaining hop count"))
	register(scalar(NWKSeqNum, LayerNWK, 8, "NWK sequence number"))
	register(Field{Name: NWKDstIEEEAddr, Layer: LayerNWK, Kind: KindIEEE, Offset: -1,
		Summary: "Destination IEEE address (aa:bb:cc:dd:ee:ff:00:11)"})
	register(Field{Name: NWKSrcIEEEAddr, Layer: LayerNWK, Kind: KindIEEE, Offset: -1,
		Summary: "Source IEEE address (aa:bb:cc:dd:ee:ff:00:11)"})
	register(scalar(NWKMulticastCtrl, LayerNWK, 8, "Multicast control"))

	register(payload(PayloadCapability, 8, "Capability information", 0x1))
	register(payload(PayloadShortAddr, 16, "Short address", 0x2, 0x8))
	register(payload(PayloadAssociationStatus, 8, "Association status", 0x2))
	register(payload(PayloadReason, 8, "Disassociation reason", 0x3))
	register(payload(PayloadPANID, 16, "PAN identifier", 0x8))
	register(payload(PayloadCoordShortAddr, 16, "Coordinator short address", 0x8))
	register(payload(PayloadLogicalChannel, 8, "Logical channel", 0x8))
	register(payload(PayloadGTSChar, 8, "GTS characteristics", 0x9))
}

// Lookup returns the field definition for name.
func Lookup(name string) (Field, bool) {
	f, ok := fields[name]
	return f, ok
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Field {
	f, ok := fields[name]
	if !ok {
		panic("spec: unknown field " + name)
	}
	return f
}

// Fields returns every field sorted by layer then name.
func Fields() []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Layer != out[j].Layer {
			return layerRank(out[i].Layer) < layerRank(out[j].Layer)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func layerRank(l Layer) int {
	switch l {
	case LayerMAC:
		return 0
	case LayerNWK:
		return 1
	default:
		return 2
	}
}

// Max returns the exclusive upper bound of a scalar field.
func (f Field) Max() int {
	return 1 << f.Bits
}

// Validate checks v against the field domain [0, 2^bits). It never clamps.
func (f Field) Validate(v int) (int, error) {
	if f.Kind != KindScalar {
		return 0, zigbee.Fail(zigbee.KindInvalidAddressFormat, f.Name, "address field takes address text, got integer %d", v)
	}
	if v < 0 || v >= f.Max() {
		return 0, zigbee.Fail(zigbee.KindOutOfRange, f.Name, "value %d outside [0, %d)", v, f.Max())
	}
	return v, nil
}

// Check validates v against the named field.
func Check(name string, v int) (int, error) {
	f, ok := fields[name]
	if !ok {
		return 0, zigbee.Fail(zigbee.KindUnknownField, name, "no such field")
	}
	return f.Validate(v)
}

// Describe renders the help text for a field. It replaces assigning a
// sentinel value to ask what a field means.
func Describe(name string) (string, error) {
	f, ok := fields[name]
	if !ok {
		return "", zigbee.Fail(zigbee.KindUnknownField, name, "no such field")
	}
	return f.Describe(), nil
}

// Describe renders the help text for f.
func (f Field) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s\n", f.Name, f.Layer, f.Summary)
	switch f.Kind {
	case KindScalar:
		fmt.Fprintf(&b, "  width: %d bit(s), range 0..%d\n", f.Bits, f.Max()-1)
	case KindAddress:
		b.WriteString("  value: short address 0..65535 or 8 colon separated hex octets, most significant first\n")
	case KindIEEE:
		b.WriteString("  value: 8 colon separated hex octets, most significant first\n")
	}
	if f.Offset >= 0 {
		fmt.Fprintf(&b, "  control word bits: %s\n", bitRange(f.Offset, f.Bits))
	}
	if len(f.Values) > 0 {
		keys := make([]int, 0, len(f.Values))
		for k := range f.Values {
			keys = append(keys, int(k))
		}
		sort.Ints(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %d: %s\n", k, f.Values[uint8(k)])
		}
	}
	if len(f.Commands) > 0 {
		names := make([]string, 0, len(f.Commands))
		for _, id := range f.Commands {
			names = append(names, fmt.Sprintf("%d (%s)", id, CommandName(id)))
		}
		fmt.Fprintf(&b, "  commands: %s\n", strings.Join(names, ", "))
	}
	if f.Fixed {
		b.WriteString("  set by the frame kind, not assignable\n")
	}
	return b.String()
}

func bitRange(offset, bits int) string {
	if bits == 1 {
		return fmt.Sprintf("%d", offset)
	}
	return fmt.Sprintf("%d-%d", offset, offset+bits-1)
}
