package common

import "errors"

var (
	// repository errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// service errors
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")

	// booking errors
	ErrSoldOut = errors.New("not enough seats left")

	ErrInvalidToken = errors.New("invalid token")
)
