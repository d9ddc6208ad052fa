package domain

import "errors"

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
	ErrInvalidUsername      = errors.New("username is required")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrLedgerDisabled       = errors.New("payment ledger is not configured")
)
