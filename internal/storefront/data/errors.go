package data

import "errors"

var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrInvalidLogin              = errors.New("invalid login")
	ErrInvalidPassword           = errors.New("invalid password")
	ErrOrderNotFound             = errors.New("order not found")
)
