package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a stable identity record. Users are created lazily the
// first time an identifier is seen and are never deleted by this service.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	PasswordDigest *string   `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUserWithEmail creates a user identified by an email address only.
func NewUserWithEmail(email string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email format: %w", err)
	}

	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Email:     &email,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewUserWithPhone creates a user identified by a phone number only.
func NewUserWithPhone(phone string) (*User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("phone is required")
	}

	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Phone:     &phone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Validate checks the user invariant: at least one of email/phone set.
func (u *User) Validate() error {
	if !u.HasContact() {
		return ErrNoContact
	}
	return nil
}

// HasContact reports whether the user has an email or phone on record.
func (u *User) HasContact() bool {
	return (u.Email != nil && *u.Email != "") || (u.Phone != nil && *u.Phone != "")
}

// DeliveryIdentifier returns the identifier one-time codes are keyed by
// and delivered to: the phone when present, otherwise the email.
func (u *User) DeliveryIdentifier() string {
	if u.Phone != nil && *u.Phone != "" {
		return *u.Phone
	}
	if u.Email != nil {
		return *u.Email
	}
	return ""
}

// HasPassword reports whether a password digest is stored for the user.
func (u *User) HasPassword() bool {
	return u.PasswordDigest != nil && *u.PasswordDigest != ""
}
