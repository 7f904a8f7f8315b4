package domain

import "errors"

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInternalError   = errors.New("internal error")
	ErrUserNotFound    = errors.New("user not found")
	ErrRecordNotFound  = errors.New("record not found")
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name exceeds maximum length")
	ErrUnknownKind     = errors.New("unknown record kind")
	ErrAmountNegative  = errors.New("amount must not be negative")
	ErrInvalidCategory = errors.New("invalid category")
)

// Validation constants
const (
	MaxNameLength = 255
)

func validateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
