package registration

import (
	"fmt"
	"regexp"
	"strings"
)

// ipv4Re matches exactly four dot-separated decimal octets in [0, 255].
var ipv4Re = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)

// Field names a draft input. The values double as the JSON keys of Draft.
type Field string

const (
	FieldName      Field = "name"
	FieldIPAddress Field = "ip_address"
)

// Fields lists the draft inputs in display order.
var Fields = []Field{FieldName, FieldIPAddress}

// Label is the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Robot name"
	case FieldIPAddress:
		return "IP address"
	default:
		return string(f)
	}
}

// Draft is the robot registration input exactly as typed.
type Draft struct {
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
}

// Value returns the current value of field.
func (d Draft) Value(field Field) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldIPAddress:
		return d.IPAddress
	default:
		return ""
	}
}

// RequiredFieldError reports an empty or whitespace-only required input.
type RequiredFieldError struct {
	Field Field
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field.Label())
}

// FormatError reports a value that is present but malformed.
type FormatError struct {
	Field Field
	Value string
}

func (e *FormatError) Error() string {
	switch e.Field {
	case FieldIPAddress:
		return "IP address must be a valid IPv4 address (e.g. 192.168.0.10)"
	default:
		return fmt.Sprintf("%s has an invalid format", e.Field.Label())
	}
}

// FieldErrors maps each failing field to its error.
type FieldErrors map[Field]error

// Validate runs every rule against d. The result is empty when d is valid.
// Values are trimmed only for the emptiness checks.
func Validate(d Draft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = &RequiredFieldError{Field: FieldName}
	}

	switch {
	case strings.TrimSpace(d.IPAddress) == "":
		errs[FieldIPAddress] = &RequiredFieldError{Field: FieldIPAddress}
	case !IsIPv4(d.IPAddress):
		errs[FieldIPAddress] = &FormatError{Field: FieldIPAddress, Value: d.IPAddress}
	}

	return errs
}

// IsIPv4 reports whether s is a dotted-quad IPv4 address with nothing around it.
func IsIPv4(s string) bool {
	return ipv4Re.MatchString(s)
}
