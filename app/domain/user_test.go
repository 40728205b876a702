package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserWithEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "a@b.com", wantErr: false},
		{name: "trimmed email", email: "  user@example.com  ", wantErr: false},
		{name: "empty email", email: "", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
		{name: "malformed email", email: "not-an-email", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUserWithEmail(tt.email)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user.Email)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Nil(t, user.Phone)
			assert.NoError(t, user.Validate())
		})
	}
}

func TestNewUserWithPhone(t *testing.T) {
	user, err := NewUserWithPhone("5551234")
	require.NoError(t, err)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "5551234", *user.Phone)
	assert.Nil(t, user.Email)
	assert.NoError(t, user.Validate())

	_, err = NewUserWithPhone("  ")
	assert.Error(t, err)
}

func TestUser_Validate_NoContact(t *testing.T) {
	user := &User{ID: uuid.New()}
	assert.ErrorIs(t, user.Validate(), ErrNoContact)

	empty := ""
	user.Email = &empty
	assert.ErrorIs(t, user.Validate(), ErrNoContact)
}

func TestUser_DeliveryIdentifier(t *testing.T) {
	email := "a@b.com"
	phone := "5551234"

	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "phone preferred", user: User{Email: &email, Phone: &phone}, want: "5551234"},
		{name: "email fallback", user: User{Email: &email}, want: "a@b.com"},
		{name: "phone only", user: User{Phone: &phone}, want: "5551234"},
		{name: "no contact", user: User{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DeliveryIdentifier())
		})
	}
}

func TestUser_HasPassword(t *testing.T) {
	digest := "$2a$10$abcdefghijklmnopqrstuv"
	empty := ""

	assert.False(t, (&User{}).HasPassword())
	assert.False(t, (&User{PasswordDigest: &empty}).HasPassword())
	assert.True(t, (&User{PasswordDigest: &digest}).HasPassword())
}
