package auth

import "errors"

// Common authentication errors
var (
	// ErrInvalidToken indicates the token is malformed, has a bad signature,
	// or carries claims we cannot use.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token's iat/nbf lies in the future
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrPasswordMismatch indicates a candidate password does not match its hash
	ErrPasswordMismatch = errors.New("password does not match")
)
