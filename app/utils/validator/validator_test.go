package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identifyPayload struct {
	Method     string `json:"method" validate:"required,identify_method"`
	Identifier string `json:"identifier" validate:"required"`
}

type verifyPayload struct {
	IdentifierToken string `json:"identifier_token" validate:"required,uuid4"`
	Otp             string `json:"otp" validate:"omitempty,otp_code"`
}

func TestValidate_IdentifyPayload(t *testing.T) {
	tests := []struct {
		name      string
		payload   identifyPayload
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid email method",
			payload: identifyPayload{Method: "email", Identifier: "a@b.com"},
			wantErr: false,
		},
		{
			name:    "valid phone method",
			payload: identifyPayload{Method: "phone", Identifier: "5551234"},
			wantErr: false,
		},
		{
			name:      "unknown method",
			payload:   identifyPayload{Method: "carrier-pigeon", Identifier: "x"},
			wantErr:   true,
			wantField: "method",
		},
		{
			name:      "missing identifier",
			payload:   identifyPayload{Method: "email"},
			wantErr:   true,
			wantField: "identifier",
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.payload)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Contains(t, verr.Errors, tt.wantField)
		})
	}
}

func TestValidate_VerifyPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload verifyPayload
		wantErr bool
	}{
		{
			name:    "valid token and code",
			payload: verifyPayload{IdentifierToken: "8d6a0d18-4f91-4f5e-a9c2-3a1b6a2a7c10", Otp: "123456"},
			wantErr: false,
		},
		{
			name:    "empty otp allowed at this layer",
			payload: verifyPayload{IdentifierToken: "8d6a0d18-4f91-4f5e-a9c2-3a1b6a2a7c10"},
			wantErr: false,
		},
		{
			name:    "non-numeric code",
			payload: verifyPayload{IdentifierToken: "8d6a0d18-4f91-4f5e-a9c2-3a1b6a2a7c10", Otp: "12a456"},
			wantErr: true,
		},
		{
			name:    "short code",
			payload: verifyPayload{IdentifierToken: "8d6a0d18-4f91-4f5e-a9c2-3a1b6a2a7c10", Otp: "12345"},
			wantErr: true,
		},
		{
			name:    "malformed token",
			payload: verifyPayload{IdentifierToken: "not-a-uuid", Otp: "123456"},
			wantErr: true,
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "plain digits", phone: "5551234", want: true},
		{name: "international", phone: "+14155551234", want: true},
		{name: "too short", phone: "12345", want: false},
		{name: "letters", phone: "555-CALL", want: false},
		{name: "empty", phone: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhone(tt.phone))
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}
