package mac

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/address"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

func mustSet(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("setter failed: %v", err)
	}
}

// shortHeader returns a MAC command header with short addressing on both
// sides and PAN id compression enabled.
func shortHeader(t *testing.T) *Header {
	t.Helper()
	h, err := NewHeader(int(spec.MACFrameCommand))
	if err != nil {
		t.Fatalf("NewHeader: %v", err)
	}
	mustSet(t, h.SetSecurity(0))
	mustSet(t, h.SetPending(0))
	mustSet(t, h.SetAckReq(1))
	mustSet(t, h.SetIntraPAN(1))
	mustSet(t, h.SetDstAddrMode(2))
	mustSet(t, h.SetSrcAddrMode(2))
	mustSet(t, h.SetSeqNum(0x42))
	mustSet(t, h.SetDstPANID(0x1AAA))
	mustSet(t, h.SetSrcPANID(0x1AAA))
	mustSet(t, h.SetDstAddrShort(0xFFFF))
	mustSet(t, h.SetSrcAddrShort(0x0001))
	return h
}

func TestControlWord(t *testing.T) {
	h := shortHeader(t)
	fc, err := ControlWord(h)
	if err != nil {
		t.Fatalf("ControlWord: %v", err)
	}
	if fc != 0x8863 {
		t.Errorf("ControlWord() = 0x%04X, want 0x8863", fc)
	}
}

func TestControlWordBitPositions(t *testing.T) {
	tests := []struct {
		name string
		set  func(h *Header) error
		want uint16
	}{
		{"security", func(h *Header) error { return h.SetSecurity(1) }, 1 << 3},
		{"pending", func(h *Header) error { return h.SetPending(1) }, 1 << 4},
		{"ack request", func(h *Header) error { return h.SetAckReq(1) }, 1 << 5},
		{"intra PAN", func(h *Header) error { return h.SetIntraPAN(1) }, 1 << 6},
		{"dst mode extended", func(h *Header) error { return h.SetDstAddrMode(3) }, 3 << 10},
		{"src mode extended", func(h *Header) error { return h.SetSrcAddrMode(3) }, 3 << 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := NewHeader(0)
			mustSet(t, h.SetSecurity(0))
			mustSet(t, h.SetPending(0))
			mustSet(t, h.SetAckReq(0))
			mustSet(t, h.SetIntraPAN(0))
			mustSet(t, h.SetDstAddrMode(0))
			mustSet(t, h.SetSrcAddrMode(0))
			mustSet(t, tt.set(h))
			fc, err := ControlWord(h)
			if err != nil {
				t.Fatalf("ControlWord: %v", err)
			}
			if fc != tt.want {
				t.Errorf("ControlWord() = 0x%04X, want 0x%04X", fc, tt.want)
			}
		})
	}
}

func TestControlWordIncomplete(t *testing.T) {
	setters := map[string]func(h *Header) error{
		spec.MACSecurity:    func(h *Header) error { return h.SetSecurity(0) },
		spec.MACPending:     func(h *Header) error { return h.SetPending(0) },
		spec.MACAckReq:      func(h *Header) error { return h.SetAckReq(0) },
		spec.MACIntraPAN:    func(h *Header) error { return h.SetIntraPAN(0) },
		spec.MACDstAddrMode: func(h *Header) error { return h.SetDstAddrMode(0) },
		spec.MACSrcAddrMode: func(h *Header) error { return h.SetSrcAddrMode(0) },
	}

	for missing := range setters {
		t.Run(missing, func(t *testing.T) {
			h, _ := NewHeader(int(spec.MACFrameCommand))
			for name, set := range setters {
				if name != missing {
					mustSet(t, set(h))
				}
			}
			_, err := ControlWord(h)
			if !errors.Is(err, zigbee.ErrIncompleteControlField) {
				t.Fatalf("err = %v, want incomplete control field", err)
			}
			if !errors.Is(err, &zigbee.Error{Kind: zigbee.KindIncompleteControlField, Field: missing}) {
				t.Errorf("err = %v, want field %s", err, missing)
			}
			if _, err := Standard(h); !errors.Is(err, zigbee.ErrIncompleteControlField) {
				t.Errorf("Standard err = %v, want incomplete control field", err)
			}
			if _, err := Extended(h); !errors.Is(err, zigbee.ErrIncompleteControlField) {
				t.Errorf("Extended err = %v, want incomplete control field", err)
			}
		})
	}
}

func TestControlWordOrderIndependent(t *testing.T) {
	a, _ := NewHeader(int(spec.MACFrameData))
	mustSet(t, a.SetSecurity(1))
	mustSet(t, a.SetPending(0))
	mustSet(t, a.SetAckReq(1))
	mustSet(t, a.SetIntraPAN(1))
	mustSet(t, a.SetDstAddrMode(3))
	mustSet(t, a.SetSrcAddrMode(2))

	b, _ := NewHeader(int(spec.MACFrameData))
	mustSet(t, b.SetSrcAddrMode(2))
	mustSet(t, b.SetDstAddrMode(3))
	mustSet(t, b.SetIntraPAN(1))
	mustSet(t, b.SetAckReq(1))
	mustSet(t, b.SetPending(0))
	mustSet(t, b.SetSecurity(1))

	fa, errA := ControlWord(a)
	fb, errB := ControlWord(b)
	if errA != nil || errB != nil {
		t.Fatalf("ControlWord errors: %v, %v", errA, errB)
	}
	if fa != fb {
		t.Errorf("assignment order changed the control word: 0x%04X vs 0x%04X", fa, fb)
	}
	again, _ := ControlWord(a)
	if again != fa {
		t.Errorf("ControlWord is not deterministic: 0x%04X vs 0x%04X", again, fa)
	}
}

func TestSetterRanges(t *testing.T) {
	h, _ := NewHeader(int(spec.MACFrameCommand))
	tests := []struct {
		name  string
		set   func(int) error
		get   func() int
		max   int
		field string
	}{
		{"security", h.SetSecurity, func() int { return int(h.Security().OrZero()) }, 1, spec.MACSecurity},
		{"pending", h.SetPending, func() int { return int(h.Pending().OrZero()) }, 1, spec.MACPending},
		{"ack_req", h.SetAckReq, func() int { return int(h.AckReq().OrZero()) }, 1, spec.MACAckReq},
		{"intra_pan", h.SetIntraPAN, func() int { return int(h.IntraPAN().OrZero()) }, 1, spec.MACIntraPAN},
		{"dst_addr_mode", h.SetDstAddrMode, func() int { return int(h.DstAddrMode().OrZero()) }, 3, spec.MACDstAddrMode},
		{"src_addr_mode", h.SetSrcAddrMode, func() int { return int(h.SrcAddrMode().OrZero()) }, 3, spec.MACSrcAddrMode},
		{"seq_num", h.SetSeqNum, func() int { return int(h.SeqNum().OrZero()) }, 0xFF, spec.MACSeqNum},
		{"dst_pan_id", h.SetDstPANID, func() int { return int(h.DstPANID().OrZero()) }, 0xFFFF, spec.MACDstPANID},
		{"src_pan_id", h.SetSrcPANID, func() int { return int(h.SrcPANID().OrZero()) }, 0xFFFF, spec.MACSrcPANID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []int{0, tt.max} {
				if err := tt.set(v); err != nil {
					t.Fatalf("set(%d): %v", v, err)
				}
				if got := tt.get(); got != v {
					t.Errorf("get() = %d after set(%d)", got, v)
				}
			}
			for _, v := range []int{-1, tt.max + 1} {
				err := tt.set(v)
				if !errors.Is(err, zigbee.ErrOutOfRange) {
					t.Errorf("set(%d) err = %v, want out of range", v, err)
				}
				if got := tt.get(); got != tt.max {
					t.Errorf("rejected value changed the field: %d", got)
				}
			}
		})
	}
}

func TestNewHeaderRejectsFrameType(t *testing.T) {
	if _, err := NewHeader(8); !errors.Is(err, zigbee.ErrOutOfRange) {
		t.Errorf("NewHeader(8) err = %v, want out of range", err)
	}
}

func TestStandardIntraPAN(t *testing.T) {
	h := shortHeader(t)
	got, err := Standard(h)
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}
	want := []byte{0x63, 0x88, 0xAA, 0x1A, 0xFF, 0xFF, 0x01, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("intra-PAN: got % X, want % X", got, want)
	}

	mustSet(t, h.SetIntraPAN(0))
	got, err = Standard(h)
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}
	want = []byte{0x23, 0x88, 0xAA, 0x1A, 0xFF, 0xFF, 0xAA, 0x1A, 0x01, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("no compression: got % X, want % X", got, want)
	}
}

func TestStandardExtendedAddresses(t *testing.T) {
	h := shortHeader(t)
	mustSet(t, h.SetSrcAddrMode(3))
	mustSet(t, h.SetSrcAddrText("00:12:4b:00:01:02:03:04"))

	got, err := Standard(h)
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}
	want := []byte{
		0x63, 0xC8, // fc 0xC863
		0xAA, 0x1A, // dst PAN
		0xFF, 0xFF, // dst short
		0x04, 0x03, 0x02, 0x01, 0x00, 0x4B, 0x12, 0x00, // src extended, reversed
	}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestStandardNoAddressing(t *testing.T) {
	h := shortHeader(t)
	mustSet(t, h.SetDstAddrMode(0))
	mustSet(t, h.SetSrcAddrMode(0))
	got, err := Standard(h)
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}
	if !bytes.Equal(got, []byte{0x63, 0x00}) {
		t.Errorf("got % X, want 63 00", got)
	}
}

func TestStandardAddressModeConflict(t *testing.T) {
	ext, _ := address.ParseExtended("00:12:4b:00:01:02:03:04")
	short, _ := address.FromShort(0x1234)

	tests := []struct {
		name  string
		setup func(h *Header)
		side  string
	}{
		{"dst extended mode with short address", func(h *Header) {
			_ = h.SetDstAddrMode(3)
			h.SetDstAddr(short)
		}, "dst"},
		{"dst short mode with extended address", func(h *Header) {
			_ = h.SetDstAddrMode(2)
			h.SetDstAddr(ext)
		}, "dst"},
		{"src extended mode with short address", func(h *Header) {
			_ = h.SetSrcAddrMode(3)
			h.SetSrcAddr(short)
		}, "src"},
		{"src short mode with extended address", func(h *Header) {
			_ = h.SetSrcAddrMode(2)
			h.SetSrcAddr(ext)
		}, "src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := shortHeader(t)
			tt.setup(h)
			got, err := Standard(h)
			if !errors.Is(err, zigbee.ErrAddressModeConflict) {
				t.Fatalf("err = %v, want address mode conflict", err)
			}
			if zerr := err.(*zigbee.Error); zerr.Field != tt.side {
				t.Errorf("conflict side = %q, want %q", zerr.Field, tt.side)
			}
			if got != nil {
				t.Errorf("partial output returned: % X", got)
			}
		})
	}
}

func TestStandardMissingFields(t *testing.T) {
	t.Run("dst PAN id", func(t *testing.T) {
		h, _ := NewHeader(int(spec.MACFrameCommand))
		for _, err := range []error{h.SetSecurity(0), h.SetPending(0), h.SetAckReq(0), h.SetIntraPAN(1), h.SetDstAddrMode(2), h.SetSrcAddrMode(0), h.SetDstAddrShort(1)} {
			mustSet(t, err)
		}
		_, err := Standard(h)
		if !errors.Is(err, &zigbee.Error{Kind: zigbee.KindMissingHeaderField, Field: spec.MACDstPANID}) {
			t.Errorf("err = %v, want missing %s", err, spec.MACDstPANID)
		}
	})

	t.Run("src address", func(t *testing.T) {
		h, _ := NewHeader(int(spec.MACFrameCommand))
		for _, err := range []error{h.SetSecurity(0), h.SetPending(0), h.SetAckReq(0), h.SetIntraPAN(1), h.SetDstAddrMode(0), h.SetSrcAddrMode(2)} {
			mustSet(t, err)
		}
		_, err := Standard(h)
		if !errors.Is(err, &zigbee.Error{Kind: zigbee.KindMissingHeaderField, Field: spec.MACSrcAddr}) {
			t.Errorf("err = %v, want missing %s", err, spec.MACSrcAddr)
		}
	})

	t.Run("src PAN id without compression", func(t *testing.T) {
		h, _ := NewHeader(int(spec.MACFrameCommand))
		for _, err := range []error{h.SetSecurity(0), h.SetPending(0), h.SetAckReq(0), h.SetIntraPAN(0), h.SetDstAddrMode(0), h.SetSrcAddrMode(2), h.SetSrcAddrShort(7)} {
			mustSet(t, err)
		}
		_, err := Standard(h)
		if !errors.Is(err, &zigbee.Error{Kind: zigbee.KindMissingHeaderField, Field: spec.MACSrcPANID}) {
			t.Errorf("err = %v, want missing %s", err, spec.MACSrcPANID)
		}
	})
}

func TestExtendedIgnoresModes(t *testing.T) {
	h, _ := NewHeader(int(spec.MACFrameCommand))
	for _, err := range []error{h.SetSecurity(0), h.SetPending(0), h.SetAckReq(0), h.SetIntraPAN(0), h.SetDstAddrMode(0), h.SetSrcAddrMode(0)} {
		mustSet(t, err)
	}
	mustSet(t, h.SetDstPANID(0x1234))
	mustSet(t, h.SetDstAddrText("00:12:4b:00:01:02:03:04"))

	got, err := Extended(h)
	if err != nil {
		t.Fatalf("Extended: %v", err)
	}
	want := []byte{0x03, 0x00, 0x34, 0x12, 0x04, 0x03, 0x02, 0x01, 0x00, 0x4B, 0x12, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}

	std, err := Standard(h)
	if err != nil {
		t.Fatalf("Standard: %v", err)
	}
	if !bytes.Equal(std, []byte{0x03, 0x00}) {
		t.Errorf("standard layout emitted addressing with mode 0: % X", std)
	}
}

func TestExtendedSkipsConflictCheck(t *testing.T) {
	h := shortHeader(t)
	mustSet(t, h.SetDstAddrMode(3)) // short address stays assigned
	got, err := Extended(h)
	if err != nil {
		t.Fatalf("Extended: %v", err)
	}
	want := []byte{0x63, 0x8C, 0xAA, 0x1A, 0xFF, 0xFF, 0xAA, 0x1A, 0x01, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
	if _, err := Standard(h); !errors.Is(err, zigbee.ErrAddressModeConflict) {
		t.Errorf("Standard err = %v, want address mode conflict", err)
	}
}

func TestExtendedFillsMaxLen(t *testing.T) {
	short := shortHeader(t)
	ext := shortHeader(t)
	mustSet(t, ext.SetDstAddrText("00:12:4b:00:01:02:03:04"))
	mustSet(t, ext.SetSrcAddrText("00:12:4b:00:05:06:07:08"))

	for name, h := range map[string]*Header{"short": short, "extended": ext} {
		got, err := Extended(h)
		if err != nil {
			t.Fatalf("%s: Extended: %v", name, err)
		}
		if len(got) != maxLen(h) || cap(got) != maxLen(h) {
			t.Errorf("%s: len %d cap %d, want both %d", name, len(got), cap(got), maxLen(h))
		}
	}
	if maxLen(ext) != 22 {
		t.Errorf("maxLen(extended) = %d, want 22", maxLen(ext))
	}
}

func TestParseLayout(t *testing.T) {
	for _, name := range []string{"", LayoutStandard, LayoutExtended} {
		if _, err := ParseLayout(name); err != nil {
			t.Errorf("ParseLayout(%q): %v", name, err)
		}
	}
	if _, err := ParseLayout("loose"); !errors.Is(err, zigbee.ErrUnknownLayout) {
		t.Errorf("ParseLayout(loose) error = %v, want unknown_layout", err)
	}
}
