package zigbee

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of a frame construction failure.
type ErrorKind string

const (
	KindOutOfRange             ErrorKind = "out_of_range"
	KindInvalidAddressFormat   ErrorKind = "invalid_address_format"
	KindAddressModeConflict    ErrorKind = "address_mode_conflict"
	KindIncompleteControlField ErrorKind = "incomplete_control_field"
	KindMissingPayloadField    ErrorKind = "missing_payload_field"
	KindMissingHeaderField     ErrorKind = "missing_header_field"
	KindUnknownCommandID       ErrorKind = "unknown_command_id"
	KindUnknownFrameKind       ErrorKind = "unknown_frame_kind"
	KindUnknownField           ErrorKind = "unknown_field"
	KindUnknownLayout          ErrorKind = "unknown_layout"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrOutOfRange             = &Error{Kind: KindOutOfRange}
	ErrInvalidAddressFormat   = &Error{Kind: KindInvalidAddressFormat}
	ErrAddressModeConflict    = &Error{Kind: KindAddressModeConflict}
	ErrIncompleteControlField = &Error{Kind: KindIncompleteControlField}
	ErrMissingPayloadField    = &Error{Kind: KindMissingPayloadField}
	ErrMissingHeaderField     = &Error{Kind: KindMissingHeaderField}
	ErrUnknownCommandID       = &Error{Kind: KindUnknownCommandID}
	ErrUnknownFrameKind       = &Error{Kind: KindUnknownFrameKind}
	ErrUnknownField           = &Error{Kind: KindUnknownField}
	ErrUnknownLayout          = &Error{Kind: KindUnknownLayout}
)

// Error is returned by every builder and setter in this module.
type Error struct {
	Kind   ErrorKind
	Field  string
	Detail string
}

func (e *Error) Error() string {
	msg := "zigbee: " + string(e.Kind)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is an *Error of the same kind. A target carrying a
// field name must match that field too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// Fail builds an *Error with a formatted detail.
func Fail(kind ErrorKind, field string, format string, args ...any) error {
	return &Error{Kind: kind, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// As returns the *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}
