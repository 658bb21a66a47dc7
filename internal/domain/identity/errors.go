package identity

import "errors"

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an email that already has
	// an account, whether detected by pre-check or by the unique constraint.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so callers cannot tell the cases apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
