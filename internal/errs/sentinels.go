// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken indicates the email is already registered (case-insensitive).
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken indicates the username is already in use (case-insensitive).
	ErrUsernameTaken = errors.New("username already in use")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoSession indicates a mutating operation with no logged-in user.
	ErrNoSession = errors.New("no active session")

	// ErrNoActivePet indicates an active-pet operation while the user has no pets.
	ErrNoActivePet = errors.New("no active pet")

	// ErrLastPet indicates a refused attempt to delete the only remaining pet.
	ErrLastPet = errors.New("cannot delete the last pet")
)
