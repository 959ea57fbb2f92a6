package nwk

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

func mustSet(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("setter failed: %v", err)
	}
}

func controlHeader(t *testing.T) *Header {
	t.Helper()
	h, err := NewHeader(int(spec.NWKFrameData))
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	mustSet(t, h.SetDiscoverRoute(1))
	mustSet(t, h.SetMulticast(0))
	mustSet(t, h.SetSecurity(1))
	mustSet(t, h.SetSourceRoute(0))
	mustSet(t, h.SetDstIEEEFlag(0))
	mustSet(t, h.SetSrcIEEEFlag(1))
	return h
}

func TestControlWord(t *testing.T) {
	h := controlHeader(t)
	fc, err := ControlWord(h)
	if err != nil {
		t.Fatalf("ControlWord: %v", err)
	}
	// discover route bit 6, security bit 9, src IEEE bit 12
	if fc != 0x1240 {
		t.Errorf("ControlWord() = 0x%04X, want 0x1240", fc)
	}
}

func TestControlWordFrameTypeAndProtocolVersion(t *testing.T) {
	h, _ := NewHeader(int(spec.NWKFrameInterPAN))
	for _, err := range []error{h.SetDiscoverRoute(0), h.SetMulticast(1), h.SetSecurity(0), h.SetSourceRoute(1), h.SetDstIEEEFlag(1), h.SetSrcIEEEFlag(0), h.SetProtocolVer(2)} {
		mustSet(t, err)
	}
	fc, err := ControlWord(h)
	if err != nil {
		t.Fatalf("ControlWord: %v", err)
	}
	// protocol version stays out of bits 2-5
	if fc != 0x0D03 {
		t.Errorf("ControlWord() = 0x%04X, want 0x0D03", fc)
	}
}

func TestControlWordIncomplete(t *testing.T) {
	setters := map[string]func(h *Header) error{
		spec.NWKDiscoverRoute: func(h *Header) error { return h.SetDiscoverRoute(0) },
		spec.NWKMulticast:     func(h *Header) error { return h.SetMulticast(0) },
		spec.NWKSecurity:      func(h *Header) error { return h.SetSecurity(0) },
		spec.NWKSourceRoute:   func(h *Header) error { return h.SetSourceRoute(0) },
		spec.NWKDstIEEEFlag:   func(h *Header) error { return h.SetDstIEEEFlag(0) },
		spec.NWKSrcIEEEFlag:   func(h *Header) error { return h.SetSrcIEEEFlag(0) },
	}

	for missing := range setters {
		t.Run(missing, func(t *testing.T) {
			h, _ := NewHeader(int(spec.NWKFrameData))
			for name, set := range setters {
				if name != missing {
					mustSet(t, set(h))
				}
			}
			mustSet(t, h.SetDstAddr(0x0102))

			_, err := ControlWord(h)
			if !errors.Is(err, zigbee.ErrIncompleteControlField) {
				t.Fatalf("err = %v, want incomplete control field", err)
			}
			if !errors.Is(err, &zigbee.Error{Kind: zigbee.KindIncompleteControlField, Field: missing}) {
				t.Errorf("err = %v, want field %s", err, missing)
			}
			if _, err := Build(h); !errors.Is(err, &zigbee.Error{Kind: zigbee.KindIncompleteControlField, Field: missing}) {
				t.Errorf("Build err = %v, want incomplete %s", err, missing)
			}
		})
	}
}

func TestControlWordOrderIndependent(t *testing.T) {
	a, _ := NewHeader(int(spec.NWKFrameCommand))
	mustSet(t, a.SetDiscoverRoute(2))
	mustSet(t, a.SetMulticast(1))
	mustSet(t, a.SetSecurity(0))
	mustSet(t, a.SetSourceRoute(1))
	mustSet(t, a.SetDstIEEEFlag(0))
	mustSet(t, a.SetSrcIEEEFlag(1))

	b, _ := NewHeader(int(spec.NWKFrameCommand))
	mustSet(t, b.SetSrcIEEEFlag(1))
	mustSet(t, b.SetDstIEEEFlag(0))
	mustSet(t, b.SetSourceRoute(1))
	mustSet(t, b.SetSecurity(0))
	mustSet(t, b.SetMulticast(1))
	mustSet(t, b.SetDiscoverRoute(2))

	fa, errA := ControlWord(a)
	fb, errB := ControlWord(b)
	if errA != nil || errB != nil {
		t.Fatalf("ControlWord errors: %v, %v", errA, errB)
	}
	if fa != fb {
		t.Errorf("assignment order changed the control word: 0x%04X vs 0x%04X", fa, fb)
	}
	// command type, discover route 2, multicast, source route, src IEEE
	if fa != 0x1581 {
		t.Errorf("ControlWord() = 0x%04X, want 0x1581", fa)
	}
	again, _ := ControlWord(a)
	if again != fa {
		t.Errorf("ControlWord is not deterministic: 0x%04X vs 0x%04X", again, fa)
	}
}

func TestBuildEmitsOnlyControlAndDestination(t *testing.T) {
	h := controlHeader(t)
	mustSet(t, h.SetDstAddr(0x0102))
	mustSet(t, h.SetSrcAddr(0x0000))
	mustSet(t, h.SetRadius(30))
	mustSet(t, h.SetSeqNum(0x11))
	mustSet(t, h.SetMulticastCtrl(0x01))
	mustSet(t, h.SetSrcIEEEAddr("00:12:4b:00:01:02:03:04"))

	got, err := Build(h)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []byte{0x40, 0x12, 0x02, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("Build() = % X, want % X", got, want)
	}
}

func TestBuildMissingDestination(t *testing.T) {
	h := controlHeader(t)
	_, err := Build(h)
	if !errors.Is(err, zigbee.ErrMissingHeaderField) {
		t.Errorf("err = %v, want missing header field", err)
	}
}

func TestSetterRanges(t *testing.T) {
	h, _ := NewHeader(0)
	tests := []struct {
		name string
		set  func(int) error
		max  int
	}{
		{"protocol version", h.SetProtocolVer, 0xF},
		{"discover route", h.SetDiscoverRoute, 0x3},
		{"multicast", h.SetMulticast, 1},
		{"security", h.SetSecurity, 1},
		{"source route", h.SetSourceRoute, 1},
		{"dst ieee flag", h.SetDstIEEEFlag, 1},
		{"src ieee flag", h.SetSrcIEEEFlag, 1},
		{"dst addr", h.SetDstAddr, 0xFFFF},
		{"src addr", h.SetSrcAddr, 0xFFFF},
		{"radius", h.SetRadius, 0xFF},
		{"seq num", h.SetSeqNum, 0xFF},
		{"multicast ctrl", h.SetMulticastCtrl, 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.set(tt.max); err != nil {
				t.Errorf("set(%d): %v", tt.max, err)
			}
			if err := tt.set(tt.max + 1); !errors.Is(err, zigbee.ErrOutOfRange) {
				t.Errorf("set(%d) err = %v, want out of range", tt.max+1, err)
			}
			if err := tt.set(-1); !errors.Is(err, zigbee.ErrOutOfRange) {
				t.Errorf("set(-1) err = %v, want out of range", err)
			}
		})
	}

	if got := h.Radius().OrZero(); got != 0xFF {
		t.Errorf("Radius() = %d, want 255", got)
	}
}

func TestIEEEAddressRequiresExtendedForm(t *testing.T) {
	h, _ := NewHeader(0)
	err := h.SetDstIEEEAddr("0x1234")
	if !errors.Is(err, &zigbee.Error{Kind: zigbee.KindInvalidAddressFormat, Field: spec.NWKDstIEEEAddr}) {
		t.Fatalf("err = %v, want invalid address format on %s", err, spec.NWKDstIEEEAddr)
	}
	if !h.DstIEEEAddr().IsAbsent() {
		t.Error("rejected address was stored")
	}
	mustSet(t, h.SetDstIEEEAddr("ff:ff:ff:ff:ff:ff:ff:ff"))
	if !h.DstIEEEAddr().IsExtended() {
		t.Error("extended address not stored")
	}
}

func TestNewHeaderRejectsFrameType(t *testing.T) {
	if _, err := NewHeader(4); !errors.Is(err, zigbee.ErrOutOfRange) {
		t.Errorf("NewHeader(4) err = %v, want out of range", err)
	}
}
