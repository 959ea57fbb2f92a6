package frame

import (
	"strconv"
	"strings"

	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/mac"
	"github.com/Xarlan/zigbee/internal/zigbee/nwk"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

var macFields = []string{
	spec.MACSecurity,
	spec.MACPending,
	spec.MACAckReq,
	spec.MACIntraPAN,
	spec.MACDstAddrMode,
	spec.MACSrcAddrMode,
	spec.MACSeqNum,
	spec.MACDstPANID,
	spec.MACDstAddr,
	spec.MACSrcPANID,
	spec.MACSrcAddr,
}

var nwkFields = []string{
	spec.NWKProtocolVer,
	spec.NWKDiscoverRoute,
	spec.NWKMulticast,
	spec.NWKSecurity,
	spec.NWKSourceRoute,
	spec.NWKDstIEEEFlag,
	spec.NWKSrcIEEEFlag,
	spec.NWKDstAddr,
	spec.NWKSrcAddr,
	spec.NWKRadius,
	spec.NWKSeqNum,
	spec.NWKDstIEEEAddr,
	spec.NWKSrcIEEEAddr,
	spec.NWKMulticastCtrl,
}

func notAccepted(name string, k Kind) error {
	if f, ok := spec.Lookup(name); ok && f.Fixed {
		return zigbee.Fail(zigbee.KindUnknownField, name, "fixed by the %s frame kind", k)
	}
	return zigbee.Fail(zigbee.KindUnknownField, name, "not a field of a %s frame", k)
}

// parseScalar reads decimal, 0x hex, 0o octal or 0b binary integer text.
func parseScalar(name, text string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 0, 64)
	if err != nil {
		return 0, zigbee.Fail(zigbee.KindOutOfRange, name, "%q is not an integer", text)
	}
	if v < -1<<31 || v > 1<<31-1 {
		return 0, zigbee.Fail(zigbee.KindOutOfRange, name, "value %d is too large", v)
	}
	return int(v), nil
}

func setMACInt(h *mac.Header, name string, v int) (bool, error) {
	switch name {
	case spec.MACSecurity:
		return true, h.SetSecurity(v)
	case spec.MACPending:
		return true, h.SetPending(v)
	case spec.MACAckReq:
		return true, h.SetAckReq(v)
	case spec.MACIntraPAN:
		return true, h.SetIntraPAN(v)
	case spec.MACDstAddrMode:
		return true, h.SetDstAddrMode(v)
	case spec.MACSrcAddrMode:
		return true, h.SetSrcAddrMode(v)
	case spec.MACSeqNum:
		return true, h.SetSeqNum(v)
	case spec.MACDstPANID:
		return true, h.SetDstPANID(v)
	case spec.MACSrcPANID:
		return true, h.SetSrcPANID(v)
	case spec.MACDstAddr:
		return true, h.SetDstAddrShort(v)
	case spec.MACSrcAddr:
		return true, h.SetSrcAddrShort(v)
	}
	return false, nil
}

func setMACText(h *mac.Header, name, text string) (bool, error) {
	switch name {
	case spec.MACDstAddr:
		return true, h.SetDstAddrText(text)
	case spec.MACSrcAddr:
		return true, h.SetSrcAddrText(text)
	}
	if !contains(macFields, name) {
		return false, nil
	}
	v, err := parseScalar(name, text)
	if err != nil {
		return true, err
	}
	return setMACInt(h, name, v)
}

func setNWKInt(h *nwk.Header, name string, v int) (bool, error) {
	switch name {
	case spec.NWKProtocolVer:
		return true, h.SetProtocolVer(v)
	case spec.NWKDiscoverRoute:
		return true, h.SetDiscoverRoute(v)
	case spec.NWKMulticast:
		return true, h.SetMulticast(v)
	case spec.NWKSecurity:
		return true, h.SetSecurity(v)
	case spec.NWKSourceRoute:
		return true, h.SetSourceRoute(v)
	case spec.NWKDstIEEEFlag:
		return true, h.SetDstIEEEFlag(v)
	case spec.NWKSrcIEEEFlag:
		return true, h.SetSrcIEEEFlag(v)
	case spec.NWKDstAddr:
		return true, h.SetDstAddr(v)
	case spec.NWKSrcAddr:
		return true, h.SetSrcAddr(v)
	case spec.NWKRadius:
		return true, h.SetRadius(v)
	case spec.NWKSeqNum:
		return true, h.SetSeqNum(v)
	case spec.NWKMulticastCtrl:
		return true, h.SetMulticastCtrl(v)
	case spec.NWKDstIEEEAddr, spec.NWKSrcIEEEAddr:
		return true, zigbee.Fail(zigbee.KindInvalidAddressFormat, name, "IEEE address takes 8 colon separated octets, got integer %d", v)
	}
	return false, nil
}

func setNWKText(h *nwk.Header, name, text string) (bool, error) {
	switch name {
	case spec.NWKDstIEEEAddr:
		return true, h.SetDstIEEEAddr(text)
	case spec.NWKSrcIEEEAddr:
		return true, h.SetSrcIEEEAddr(text)
	}
	if !contains(nwkFields, name) {
		return false, nil
	}
	v, err := parseScalar(name, text)
	if err != nil {
		return true, err
	}
	return setNWKInt(h, name, v)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
