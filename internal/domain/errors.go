package domain

import "errors"

var (
	// ErrNotFound indicates the requested entry or user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a write violated a uniqueness constraint (slug or email).
	ErrConflict = errors.New("unique constraint violation")
	// ErrInvalidCredentials covers both unknown email and wrong password so a
	// failed login never reveals which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when creating a user whose email is taken.
	ErrUserExists = errors.New("user already exists")
)
