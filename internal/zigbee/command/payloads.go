package command

import "github.com/Xarlan/zigbee/internal/zigbee/spec"

// AssociationRequest is command 0x01.
type AssociationRequest struct {
	capability spec.Optional[uint8]
}

func (p *AssociationRequest) ID() ID           { return IDAssociationRequest }
func (p *AssociationRequest) Fields() []string { return []string{spec.PayloadCapability} }

func (p *AssociationRequest) SetCapability(v int) error {
	return setU8(&p.capability, spec.PayloadCapability, v)
}

func (p *AssociationRequest) Capability() spec.Optional[uint8] { return p.capability }

func (p *AssociationRequest) Set(name string, v int) error {
	if name == spec.PayloadCapability {
		return p.SetCapability(v)
	}
	return unknownField(name, p.ID())
}

func (p *AssociationRequest) Get(name string) (spec.Optional[uint16], bool) {
	if name == spec.PayloadCapability {
		return widen(p.capability), true
	}
	return spec.Optional[uint16]{}, false
}

func (p *AssociationRequest) appendFields(dst []byte) ([]byte, error) {
	return append8(dst, p.capability, spec.PayloadCapability, p.ID())
}

// AssociationResponse is command 0x02.
type AssociationResponse struct {
	shortAddr spec.Optional[uint16]
	status    spec.Optional[uint8]
}

func (p *AssociationResponse) ID() ID { return IDAssociationResponse }
func (p *AssociationResponse) Fields() []string {
	return []string{spec.PayloadShortAddr, spec.PayloadAssociationStatus}
}

func (p *AssociationResponse) SetShortAddr(v int) error {
	return setU16(&p.shortAddr, spec.PayloadShortAddr, v)
}

func (p *AssociationResponse) SetAssociationStatus(v int) error {
	return setU8(&p.status, spec.PayloadAssociationStatus, v)
}

func (p *AssociationResponse) ShortAddr() spec.Optional[uint16]       { return p.shortAddr }
func (p *AssociationResponse) AssociationStatus() spec.Optional[uint8] { return p.status }

func (p *AssociationResponse) Set(name string, v int) error {
	switch name {
	case spec.PayloadShortAddr:
		return p.SetShortAddr(v)
	case spec.PayloadAssociationStatus:
		return p.SetAssociationStatus(v)
	}
	return unknownField(name, p.ID())
}

func (p *AssociationResponse) Get(name string) (spec.Optional[uint16], bool) {
	switch name {
	case spec.PayloadShortAddr:
		return p.shortAddr, true
	case spec.PayloadAssociationStatus:
		return widen(p.status), true
	}
	return spec.Optional[uint16]{}, false
}

func (p *AssociationResponse) appendFields(dst []byte) ([]byte, error) {
	dst, err := append16(dst, p.shortAddr, spec.PayloadShortAddr, p.ID())
	if err != nil {
		return nil, err
	}
	return append8(dst, p.status, spec.PayloadAssociationStatus, p.ID())
}

// DisassociationNotification is command 0x03.
type DisassociationNotification struct {
	reason spec.Optional[uint8]
}

func (p *DisassociationNotification) ID() ID           { return IDDisassociationNotification }
func (p *DisassociationNotification) Fields() []string { return []string{spec.PayloadReason} }

func (p *DisassociationNotification) SetReason(v int) error {
	return setU8(&p.reason, spec.PayloadReason, v)
}

func (p *DisassociationNotification) Reason() spec.Optional[uint8] { return p.reason }

func (p *DisassociationNotification) Set(name string, v int) error {
	if name == spec.PayloadReason {
		return p.SetReason(v)
	}
	return unknownField(name, p.ID())
}

func (p *DisassociationNotification) Get(name string) (spec.Optional[uint16], bool) {
	if name == spec.PayloadReason {
		return widen(p.reason), true
	}
	return spec.Optional[uint16]{}, false
}

func (p *DisassociationNotification) appendFields(dst []byte) ([]byte, error) {
	return append8(dst, p.reason, spec.PayloadReason, p.ID())
}

// Empty is a command with no fields: data request (0x04), PAN id conflict
// notification (0x05), orphan notification (0x06) and beacon request (0x07).
type Empty struct {
	id ID
}

func (p *Empty) ID() ID           { return p.id }
func (p *Empty) Fields() []string { return nil }

func (p *Empty) Set(name string, _ int) error { return unknownField(name, p.id) }

func (p *Empty) Get(string) (spec.Optional[uint16], bool) {
	return spec.Optional[uint16]{}, false
}

func (p *Empty) appendFields(dst []byte) ([]byte, error) { return dst, nil }

// CoordinatorRealignment is command 0x08.
type CoordinatorRealignment struct {
	panID          spec.Optional[uint16]
	coordShortAddr spec.Optional[uint16]
	logicalChannel spec.Optional[uint8]
	shortAddr      spec.Optional[uint16]
}

func (p *CoordinatorRealignment) ID() ID { return IDCoordinatorRealignment }
func (p *CoordinatorRealignment) Fields() []string {
	return []string{spec.PayloadPANID, spec.PayloadCoordShortAddr, spec.PayloadLogicalChannel, spec.PayloadShortAddr}
}

func (p *CoordinatorRealignment) SetPANID(v int) error {
	return setU16(&p.panID, spec.PayloadPANID, v)
}

func (p *CoordinatorRealignment) SetCoordShortAddr(v int) error {
	return setU16(&p.coordShortAddr, spec.PayloadCoordShortAddr, v)
}

func (p *CoordinatorRealignment) SetLogicalChannel(v int) error {
	return setU8(&p.logicalChannel, spec.PayloadLogicalChannel, v)
}

func (p *CoordinatorRealignment) SetShortAddr(v int) error {
	return setU16(&p.shortAddr, spec.PayloadShortAddr, v)
}

func (p *CoordinatorRealignment) PANID() spec.Optional[uint16]          { return p.panID }
func (p *CoordinatorRealignment) CoordShortAddr() spec.Optional[uint16] { return p.coordShortAddr }
func (p *CoordinatorRealignment) LogicalChannel() spec.Optional[uint8]  { return p.logicalChannel }
func (p *CoordinatorRealignment) ShortAddr() spec.Optional[uint16]      { return p.shortAddr }

func (p *CoordinatorRealignment) Set(name string, v int) error {
	switch name {
	case spec.PayloadPANID:
		return p.SetPANID(v)
	case spec.PayloadCoordShortAddr:
		return p.SetCoordShortAddr(v)
	case spec.PayloadLogicalChannel:
		return p.SetLogicalChannel(v)
	case spec.PayloadShortAddr:
		return p.SetShortAddr(v)
	}
	return unknownField(name, p.ID())
}

func (p *CoordinatorRealignment) Get(name string) (spec.Optional[uint16], bool) {
	switch name {
	case spec.PayloadPANID:
		return p.panID, true
	case spec.PayloadCoordShortAddr:
		return p.coordShortAddr, true
	case spec.PayloadLogicalChannel:
		return widen(p.logicalChannel), true
	case spec.PayloadShortAddr:
		return p.shortAddr, true
	}
	return spec.Optional[uint16]{}, false
}

func (p *CoordinatorRealignment) appendFields(dst []byte) ([]byte, error) {
	dst, err := append16(dst, p.panID, spec.PayloadPANID, p.ID())
	if err != nil {
		return nil, err
	}
	if dst, err = append16(dst, p.coordShortAddr, spec.PayloadCoordShortAddr, p.ID()); err != nil {
		return nil, err
	}
	if dst, err = append8(dst, p.logicalChannel, spec.PayloadLogicalChannel, p.ID()); err != nil {
		return nil, err
	}
	return append16(dst, p.shortAddr, spec.PayloadShortAddr, p.ID())
}

// GTSRequest is command 0x09.
type GTSRequest struct {
	characteristics spec.Optional[uint8]
}

func (p *GTSRequest) ID() ID           { return IDGTSRequest }
func (p *GTSRequest) Fields() []string { return []string{spec.PayloadGTSChar} }

func (p *GTSRequest) SetCharacteristics(v int) error {
	return setU8(&p.characteristics, spec.PayloadGTSChar, v)
}

func (p *GTSRequest) Characteristics() spec.Optional[uint8] { return p.characteristics }

func (p *GTSRequest) Set(name string, v int) error {
	if name == spec.PayloadGTSChar {
		return p.SetCharacteristics(v)
	}
	return unknownField(name, p.ID())
}

func (p *GTSRequest) Get(name string) (spec.Optional[uint16], bool) {
	if name == spec.PayloadGTSChar {
		return widen(p.characteristics), true
	}
	return spec.Optional[uint16]{}, false
}

func (p *GTSRequest) appendFields(dst []byte) ([]byte, error) {
	return append8(dst, p.characteristics, spec.PayloadGTSChar, p.ID())
}
