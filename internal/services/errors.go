package services

import "errors"

// Sentinel errors handlers map onto HTTP responses.
var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMobileTaken is returned when registering a mobile number that
	// already belongs to a user.
	ErrMobileTaken = errors.New("mobile number already registered")
	// ErrInvalidCredentials is returned on login failure. Unknown mobile and
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid mobile number or password")
	// ErrQuotaExceeded is returned when an upload batch would push a user
	// past the per-user image ceiling.
	ErrQuotaExceeded = errors.New("image quota exceeded")
	// ErrInvalidStatus is returned for review states outside the recognized
	// set.
	ErrInvalidStatus = errors.New("invalid image status")
)
