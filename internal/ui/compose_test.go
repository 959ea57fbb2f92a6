package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/frame"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

func TestValidateFieldInput(t *testing.T) {
	tests := []struct {
		field   string
		text    string
		wantErr bool
	}{
		{spec.MACAckReq, "", false},
		{spec.MACAckReq, "1", false},
		{spec.MACAckReq, "2", true},
		{spec.MACAckReq, "yes", true},
		{spec.MACDstPANID, "0x1AAA", false},
		{spec.MACDstPANID, "0x10000", true},
		{spec.MACSeqNum, "99999999999", true},
		{spec.MACDstAddr, "0xFFFF", false},
		{spec.MACDstAddr, "00:12:4b:00:01:02:03:04", false},
		{spec.MACDstAddr, "00:12:4b", true},
		{spec.NWKDstIEEEAddr, "00:12:4b:00:01:02:03:04", false},
		{spec.NWKDstIEEEAddr, "0x1234", true},
		{"mac_nonsense", "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.text, func(t *testing.T) {
			err := ValidateFieldInput(tt.field)(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFieldInput(%s)(%q) error = %v, wantErr %v", tt.field, tt.text, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCommandID(t *testing.T) {
	for _, text := range []string{"1", "8", " 9 "} {
		if err := validateCommandID(text); err != nil {
			t.Errorf("validateCommandID(%q) = %v", text, err)
		}
	}
	for _, text := range []string{"0", "10", "x"} {
		if err := validateCommandID(text); err == nil {
			t.Errorf("validateCommandID(%q) accepted", text)
		}
	}
}

func TestKindChoiceNewFrame(t *testing.T) {
	tests := []struct {
		name   string
		choice KindChoice
		want   frame.Kind
		err    error
	}{
		{"command", KindChoice{Kind: "mac_cmd", CommandID: "8", Layout: "standard"}, frame.KindCommand, nil},
		{"data", KindChoice{Kind: "data", NWKFrameType: "0x1"}, frame.KindData, nil},
		{"beacon", KindChoice{Kind: "mac_beacon"}, frame.KindBeacon, nil},
		{"ack", KindChoice{Kind: "mac_ack"}, frame.KindAck, nil},
		{"bad command", KindChoice{Kind: "mac_cmd", CommandID: "12", Layout: "standard"}, "", zigbee.ErrUnknownCommandID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.choice.NewFrame()
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("NewFrame() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFrame() error = %v", err)
			}
			if f.Kind() != tt.want {
				t.Errorf("Kind() = %s, want %s", f.Kind(), tt.want)
			}
		})
	}
}

func TestBuildFieldFormSkipsFixedFields(t *testing.T) {
	f, err := frame.New("mac_cmd", frame.Args{CommandID: 2})
	if err != nil {
		t.Fatal(err)
	}
	inputs := FieldInputs{}
	if form := buildFieldForm(f, inputs); form == nil {
		t.Fatal("buildFieldForm returned nil")
	}
	if _, ok := inputs[spec.MACFrameType]; ok {
		t.Error("fixed frame type field offered as input")
	}
	for _, name := range []string{spec.MACSeqNum, spec.PayloadShortAddr, spec.PayloadAssociationStatus} {
		if _, ok := inputs[name]; !ok {
			t.Errorf("missing input for %s", name)
		}
	}
}

func TestComposeFinish(t *testing.T) {
	m := newComposeModel(true)
	m.choice.Kind = string(frame.KindBeacon)
	next, _ := m.startFields()
	m = next.(composeModel)
	if m.mode != viewFields {
		t.Fatalf("mode = %v, want fields", m.mode)
	}

	*m.inputs[spec.MACSeqNum] = "0x42"
	result := m.finish()
	if result.Err != nil {
		t.Fatalf("finish() error = %v", result.Err)
	}
	if got := result.Hex(false); got != "00 00 42" {
		t.Errorf("Hex(false) = %q", got)
	}
	if got := result.Hex(true); !strings.HasPrefix(got, "00 00 42 ") || len(got) != len("00 00 42 XX XX") {
		t.Errorf("Hex(true) = %q", got)
	}

	rendered := RenderResult(result, false, "Frame copied to clipboard")
	for _, want := range []string{"MAC beacon", "3 bytes: 00 00 42", "Frame copied to clipboard"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected %q in output:\n%s", want, rendered)
		}
	}
}

func TestComposeFinishError(t *testing.T) {
	m := newComposeModel(false)
	m.choice.CommandID = "2"
	next, _ := m.startFields()
	m = next.(composeModel)

	result := m.finish()
	if result.Err == nil {
		t.Fatal("expected error for a command frame with nothing set")
	}
	rendered := RenderResult(result, false, "")
	if !strings.Contains(rendered, "Error:") {
		t.Errorf("expected error in output:\n%s", rendered)
	}

	m.result = result
	m = m.copyResult()
	if m.status != "Copy: no frame available" {
		t.Errorf("status = %q", m.status)
	}
}

func TestStartFieldsBadChoice(t *testing.T) {
	m := newComposeModel(false)
	m.choice.CommandID = "0"
	next, _ := m.startFields()
	m = next.(composeModel)
	if m.mode != viewResult || m.result == nil || !errors.Is(m.result.Err, zigbee.ErrUnknownCommandID) {
		t.Errorf("mode = %v result = %+v", m.mode, m.result)
	}
}
