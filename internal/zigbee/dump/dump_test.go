package dump

import (
	"strings"
	"testing"

	"github.com/Xarlan/zigbee/internal/zigbee/frame"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

func TestPattern(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		width  int
		value  spec.Optional[uint8]
		want   string
	}{
		{"frame type", 0, 3, spec.Some[uint8](3), ".... .... .... .011"},
		{"security unset", 3, 1, spec.Optional[uint8]{}, ".... .... .... x..."},
		{"intra pan", 6, 1, spec.Some[uint8](1), ".... .... .1.. ...."},
		{"dst mode", 10, 2, spec.Some[uint8](2), ".... 10.. .... ...."},
		{"src mode", 14, 2, spec.Some[uint8](3), "11.. .... .... ...."},
		{"reserved", 12, 2, spec.Optional[uint8]{}, "..xx .... .... ...."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pattern(tt.offset, tt.width, tt.value); got != tt.want {
				t.Errorf("Pattern() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringCommandFrame(t *testing.T) {
	f, err := frame.New("mac_cmd", frame.Args{CommandID: 8})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := frame.Apply(f, map[string]any{
		spec.MACSecurity:  1,
		spec.MACDstPANID:  0x1AAA,
		spec.MACDstAddr:   "00:12:4b:00:01:02:03:04",
		spec.PayloadPANID: 0x1234,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	out := String(f)
	for _, want := range []string{
		"### [MAC header] ###",
		".... .... .... .011 Frame type (MAC command)",
		".... .... .... 1... Security",
		".... .... ...x .... Pending",
		"1AAA Destination PAN ID",
		"00:12:4B:00:01:02:03:04 Destination addr",
		"xxxx Source addr",
		"### [MAC payload] ###",
		"8 command id: Coordinator realignment",
		"1234 [payload] PAN identifier",
		"xxxx [payload] Logical channel",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q\n%s", want, out)
		}
	}
}

func TestStringDataFrame(t *testing.T) {
	f, _ := frame.New("data", frame.Args{NWKFrameType: 1})
	_ = f.SetInt(spec.NWKDstAddr, 0x0102)
	out := String(f)
	for _, want := range []string{
		"### [NWK header] ###",
		".... .... .... ..01 Frame type (NWK command)",
		".... .... xx.. .... Discover route",
		"0102 Dst addr",
		"xxxx Radius",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q\n%s", want, out)
		}
	}
}

func TestStringStubFrames(t *testing.T) {
	b, _ := frame.New("mac_beacon", frame.Args{})
	if out := String(b); !strings.Contains(out, "xxxx Sequence number") {
		t.Errorf("beacon dump = %q", out)
	}
	a, _ := frame.New("mac_ack", frame.Args{})
	if out := String(a); !strings.Contains(out, "MAC acknowledgment") {
		t.Errorf("ack dump = %q", out)
	}
}
