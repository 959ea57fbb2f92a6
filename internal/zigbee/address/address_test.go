package address

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Xarlan/zigbee/internal/zigbee"
)

func TestFromShort(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"coordinator", 0x0000, false},
		{"broadcast", 0xFFFF, false},
		{"too large", 0x10000, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := FromShort(tt.value)
			if tt.wantErr {
				if !errors.Is(err, zigbee.ErrInvalidAddressFormat) {
					t.Fatalf("err = %v, want invalid address format", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			v, ok := a.Short()
			if !ok || int(v) != tt.value {
				t.Errorf("Short() = %d, %v; want %d, true", v, ok, tt.value)
			}
		})
	}
}

func TestParseExtendedReversesOnWire(t *testing.T) {
	a, err := ParseExtended("00:12:4b:00:01:02:03:04")
	if err != nil {
		t.Fatalf("ParseExtended: %v", err)
	}
	if !a.IsExtended() {
		t.Fatalf("kind = %s, want extended", a.Kind())
	}
	octets, _ := a.Extended()
	if octets != [8]byte{0x00, 0x12, 0x4B, 0x00, 0x01, 0x02, 0x03, 0x04} {
		t.Errorf("display order changed: % X", octets)
	}
	got := a.AppendWire(nil)
	want := []byte{0x04, 0x03, 0x02, 0x01, 0x00, 0x4B, 0x12, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendWire() = % X, want % X", got, want)
	}
	if a.String() != "00:12:4B:00:01:02:03:04" {
		t.Errorf("String() = %q", a.String())
	}
}

func TestParseExtendedRejectsMalformed(t *testing.T) {
	inputs := []string{
		"00:12:4b:00:01:02:03",       // 7 octets
		"00:12:4b:00:01:02:03:04:05", // 9 octets
		"00:12:4b:00:01:02:03:zz",    // not hex
		"00:12:4b:00:01:02:03:100",   // out of range
		"00:12::00:01:02:03:04",      // empty token
		"",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseExtended(in)
			if !errors.Is(err, zigbee.ErrInvalidAddressFormat) {
				t.Errorf("ParseExtended(%q) err = %v, want invalid address format", in, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		wantKind Kind
		wantWire []byte
		wantErr  bool
	}{
		{"0x1234", Short, []byte{0x34, 0x12}, false},
		{"4660", Short, []byte{0x34, 0x12}, false},
		{"ff:ff:ff:ff:ff:ff:ff:fe", Extended, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, false},
		{"0x10000", Absent, nil, true},
		{"-1", Absent, nil, true},
		{"coordinator", Absent, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, zigbee.ErrInvalidAddressFormat) {
					t.Fatalf("err = %v, want invalid address format", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Kind() != tt.wantKind {
				t.Errorf("kind = %s, want %s", a.Kind(), tt.wantKind)
			}
			if got := a.AppendWire(nil); !bytes.Equal(got, tt.wantWire) {
				t.Errorf("wire = % X, want % X", got, tt.wantWire)
			}
			if a.WireLen() != len(tt.wantWire) {
				t.Errorf("WireLen() = %d, want %d", a.WireLen(), len(tt.wantWire))
			}
		})
	}
}

func TestAbsent(t *testing.T) {
	if !None.IsAbsent() {
		t.Fatal("None should be absent")
	}
	if got := None.AppendWire([]byte{0x01}); !bytes.Equal(got, []byte{0x01}) {
		t.Errorf("absent address appended bytes: % X", got)
	}
	if None.String() != "absent" {
		t.Errorf("String() = %q", None.String())
	}
}
