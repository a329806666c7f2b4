package service

import "errors"

var (
	ErrLoginTaken             = errors.New("login is already taken")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrOrderNotFound          = errors.New("order not found")
	ErrCancellationNotAllowed = errors.New("order cancellation is not allowed")
	ErrUnknownPaymentMethod   = errors.New("unknown payment method")
)
