package domain

import "errors"

var (
	ErrMissingField       = errors.New("missing required field")
	ErrMalformedRequest   = errors.New("malformed request")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 9999")
	ErrEmptyCart       = errors.New("cart is empty")
)
