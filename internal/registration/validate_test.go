package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIPv4(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected bool
	}{
		{name: "Private address", raw: "10.0.0.1", expected: true},
		{name: "All zeros", raw: "0.0.0.0", expected: true},
		{name: "Broadcast", raw: "255.255.255.255", expected: true},
		{name: "Upper octet boundaries", raw: "249.250.199.100", expected: true},
		{name: "Leading zero octet", raw: "192.168.01.1", expected: true},
		{name: "Octet above 255", raw: "256.1.1.1", expected: false},
		{name: "Octet far above 255", raw: "999.1.1.1", expected: false},
		{name: "Three segments", raw: "10.0.1", expected: false},
		{name: "Five segments", raw: "10.0.0.1.5", expected: false},
		{name: "Letters", raw: "10.0.a.1", expected: false},
		{name: "Leading space", raw: " 10.0.0.1", expected: false},
		{name: "Trailing space", raw: "10.0.0.1 ", expected: false},
		{name: "Trailing newline", raw: "10.0.0.1\n", expected: false},
		{name: "Trailing dot", raw: "10.0.0.1.", expected: false},
		{name: "Leading text", raw: "ip10.0.0.1", expected: false},
		{name: "Port suffix", raw: "10.0.0.1:8080", expected: false},
		{name: "Empty segment", raw: "10..0.1", expected: false},
		{name: "Four digit octet", raw: "1000.0.0.1", expected: false},
		{name: "Negative octet", raw: "-1.0.0.1", expected: false},
		{name: "Full-width digits", raw: "１０.0.0.1", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsIPv4(tc.raw))
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name         string
		draft        Draft
		nameErr      error
		ipAddressErr error
	}{
		{
			name:  "Valid draft",
			draft: Draft{Name: "로봇 F", IPAddress: "10.0.0.1"},
		},
		{
			name:  "Name with surrounding whitespace is valid",
			draft: Draft{Name: "  AMR-7  ", IPAddress: "192.168.0.7"},
		},
		{
			name:         "Empty name",
			draft:        Draft{Name: "", IPAddress: "10.0.0.1"},
			nameErr:      &RequiredFieldError{Field: FieldName},
			ipAddressErr: nil,
		},
		{
			name:    "Whitespace-only name",
			draft:   Draft{Name: " \t ", IPAddress: "10.0.0.1"},
			nameErr: &RequiredFieldError{Field: FieldName},
		},
		{
			name:         "Empty address",
			draft:        Draft{Name: "AMR-1", IPAddress: ""},
			ipAddressErr: &RequiredFieldError{Field: FieldIPAddress},
		},
		{
			name:         "Whitespace-only address is required, not malformed",
			draft:        Draft{Name: "AMR-1", IPAddress: "   "},
			ipAddressErr: &RequiredFieldError{Field: FieldIPAddress},
		},
		{
			name:         "Padded address is malformed",
			draft:        Draft{Name: "AMR-1", IPAddress: " 10.0.0.1 "},
			ipAddressErr: &FormatError{Field: FieldIPAddress, Value: " 10.0.0.1 "},
		},
		{
			name:         "Both invalid",
			draft:        Draft{Name: "", IPAddress: "999.1.1.1"},
			nameErr:      &RequiredFieldError{Field: FieldName},
			ipAddressErr: &FormatError{Field: FieldIPAddress, Value: "999.1.1.1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate(tc.draft)
			assert.Equal(t, tc.nameErr, errs[FieldName])
			assert.Equal(t, tc.ipAddressErr, errs[FieldIPAddress])
			if tc.nameErr == nil && tc.ipAddressErr == nil {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "Robot name is required", (&RequiredFieldError{Field: FieldName}).Error())
	assert.Equal(t, "IP address is required", (&RequiredFieldError{Field: FieldIPAddress}).Error())
	assert.Contains(t, (&FormatError{Field: FieldIPAddress}).Error(), "valid IPv4 address")
}
