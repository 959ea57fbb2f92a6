// Package command builds IEEE 802.15.4 MAC command payloads. Each command id
// has its own type carrying only the fields that command defines.
package command

import (
	"github.com/Xarlan/zigbee/internal/zigbee"
	"github.com/Xarlan/zigbee/internal/zigbee/codec"
	"github.com/Xarlan/zigbee/internal/zigbee/spec"
)

// ID is a MAC command frame identifier.
type ID uint8

const (
	IDAssociationRequest         ID = 0x1
	IDAssociationResponse        ID = 0x2
	IDDisassociationNotification ID = 0x3
	IDDataRequest                ID = 0x4
	IDPANIDConflictNotification  ID = 0x5
	IDOrphanNotification         ID = 0x6
	IDBeaconRequest              ID = 0x7
	IDCoordinatorRealignment     ID = 0x8
	IDGTSRequest                 ID = 0x9
)

// String returns the command name.
func (id ID) String() string {
	return spec.CommandName(uint8(id))
}

// Payload is one MAC command payload.
type Payload interface {
	ID() ID
	// Fields lists the settable field names, in wire order.
	Fields() []string
	// Set assigns a field by name.
	Set(name string, v int) error
	// Get reads a field by name.
	Get(name string) (spec.Optional[uint16], bool)
	appendFields(dst []byte) ([]byte, error)
}

// New returns an empty payload for id. Ids outside 1..9 fail before any
// field exists.
func New(id int) (Payload, error) {
	if id < 0 || id > 0xFF || !spec.IsKnownCommand(uint8(id)) {
		return nil, zigbee.Fail(zigbee.KindUnknownCommandID, "", "command id %d is not one of 1..9", id)
	}
	switch ID(id) {
	case IDAssociationRequest:
		return &AssociationRequest{}, nil
	case IDAssociationResponse:
		return &AssociationResponse{}, nil
	case IDDisassociationNotification:
		return &DisassociationNotification{}, nil
	case IDCoordinatorRealignment:
		return &CoordinatorRealignment{}, nil
	case IDGTSRequest:
		return &GTSRequest{}, nil
	default:
		return &Empty{id: ID(id)}, nil
	}
}

// Encode returns the command id octet followed by the command fields.
// Every field the command defines must be set.
func Encode(p Payload) ([]byte, error) {
	out := make([]byte, 0, 8)
	out = append(out, byte(p.ID()))
	return p.appendFields(out)
}

func missing(name string, id ID) error {
	return zigbee.Fail(zigbee.KindMissingPayloadField, name, "required by command %d (%s)", uint8(id), id)
}

func unknownField(name string, id ID) error {
	return zigbee.Fail(zigbee.KindUnknownField, name, "not a field of command %d (%s)", uint8(id), id)
}

func setU8(dst *spec.Optional[uint8], name string, v int) error {
	checked, err := spec.Check(name, v)
	if err != nil {
		return err
	}
	*dst = spec.Some(uint8(checked))
	return nil
}

func setU16(dst *spec.Optional[uint16], name string, v int) error {
	checked, err := spec.Check(name, v)
	if err != nil {
		return err
	}
	*dst = spec.Some(uint16(checked))
	return nil
}

func widen(o spec.Optional[uint8]) spec.Optional[uint16] {
	if v, ok := o.Get(); ok {
		return spec.Some(uint16(v))
	}
	return spec.Optional[uint16]{}
}

func append8(dst []byte, o spec.Optional[uint8], name string, id ID) ([]byte, error) {
	v, ok := o.Get()
	if !ok {
		return nil, missing(name, id)
	}
	return append(dst, v), nil
}

func append16(dst []byte, o spec.Optional[uint16], name string, id ID) ([]byte, error) {
	v, ok := o.Get()
	if !ok {
		return nil, missing(name, id)
	}
	return codec.AppendUint16(dst, v), nil
}
