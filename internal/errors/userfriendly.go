package errors

import (
	"fmt"
	"strings"

	"github.com/Xarlan/zigbee/internal/zigbee"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapBuildError wraps a frame construction error. name identifies the frame
// (a catalog key or a frame kind).
func WrapBuildError(err error, name string) error {
	if err == nil {
		return nil
	}

	reason, hint, try := buildAdvice(err)
	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to build frame %s", name),
		Reason:  reason,
		Hint:    hint,
		Try:     try,
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Delete the file to regenerate defaults, or compare it with the generated zbframe.yaml",
		Try:     fmt.Sprintf("zbframe describe --config %s", configPath),
		Err:     err,
	}
}

// WrapCatalogError wraps catalog load and validation errors
func WrapCatalogError(err error, catalogPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Catalog error in %s", catalogPath),
		Reason:  extractCatalogReason(err),
		Hint:    "Catalogs need version: 1 and a frames list; see catalogs/samples.yaml",
		Try:     fmt.Sprintf("zbframe catalog --file %s --check", catalogPath),
		Err:     err,
	}
}

func buildAdvice(err error) (reason, hint, try string) {
	field := ""
	if ze, ok := zigbee.As(err); ok {
		field = ze.Field
	}
	describe := "zbframe describe"
	if field != "" {
		describe = "zbframe describe " + field
	}

	switch zigbee.KindOf(err) {
	case zigbee.KindOutOfRange:
		return "A field value is outside the range its bit width allows",
			"Field values are never clamped; pick a value inside the listed range", describe
	case zigbee.KindInvalidAddressFormat:
		return "An address is malformed",
			"Short addresses are 0..0xFFFF; extended addresses are 8 colon separated hex octets, most significant first", describe
	case zigbee.KindAddressModeConflict:
		return "An addressing mode disagrees with the address assigned to it",
			"Mode 2 needs a short address and mode 3 an extended one; the extended layout skips this check",
			"zbframe build --layout extended ..."
	case zigbee.KindIncompleteControlField:
		return "A frame control sub-field is unset",
			"Every control bit must be set explicitly, zero included", describe
	case zigbee.KindMissingPayloadField:
		return "The command payload is missing a required field",
			"Each command id requires its own payload fields", "zbframe describe --layer payload"
	case zigbee.KindMissingHeaderField:
		return "A header field required by the addressing modes is unset",
			"A non-zero addressing mode needs its PAN id and address", describe
	case zigbee.KindUnknownCommandID:
		return "The command id is not a known MAC command",
			"MAC command ids run from 1 to 9", "zbframe describe --commands"
	case zigbee.KindUnknownFrameKind:
		return "The frame kind is not recognized",
			"Kinds are data, mac_beacon, mac_cmd and mac_ack", "zbframe build --help"
	case zigbee.KindUnknownLayout:
		return "The MAC header layout is not recognized",
			"Layouts are standard and extended; only mac_cmd frames take one", "zbframe build --help"
	case zigbee.KindUnknownField:
		return "The field does not exist on this frame",
			"Field names depend on the frame kind and command id", "zbframe describe"
	}
	return "Frame construction failed", "", ""
}

func extractCatalogReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "no such file") {
		return "Catalog file not found"
	}
	if strings.Contains(errStr, "parse catalog") {
		return "Catalog file is not valid YAML or TOML"
	}
	if strings.Contains(errStr, "duplicate key") {
		return "Two frames share the same key"
	}
	if strings.Contains(errStr, "unsupported catalog version") {
		return "Catalog version is not supported"
	}
	if strings.Contains(errStr, "validate catalog") {
		return "Catalog structure is invalid"
	}

	return "Catalog could not be used"
}
