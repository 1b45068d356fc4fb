// Package auth provides email and password accounts with a session that
// survives between runs.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for a bad email or password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already taken")

	// ErrNotSignedIn is returned by operations that need a session.
	ErrNotSignedIn = errors.New("not signed in")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// UserID identifies an account. It is a UUID string.
type UserID string

func (id UserID) String() string { return string(id) }

// Credentials are what a user types to sign up or sign in.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks the shape of c. The returned error wraps
// ErrInvalidCredentials.
func (c Credentials) Validate() error {
	email := strings.TrimSpace(c.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email must contain @", ErrInvalidCredentials)
	}
	if len(c.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidCredentials, MinPasswordLength)
	}
	return nil
}
