package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrPersistence     = errors.New("persistence failed")
	ErrInUse           = errors.New("record in use")
)

// serviceError carries a caller-facing message alongside one of the sentinel errors above.
type serviceError struct {
	kind    error
	message string
}

func (err *serviceError) Error() string {
	return err.message
}

func (err *serviceError) Unwrap() error {
	return err.kind
}

func notFound(message string) error {
	return &serviceError{kind: ErrNotFound, message: message}
}

func invalid(format string, args ...any) error {
	return &serviceError{kind: ErrValidation, message: fmt.Sprintf(format, args...)}
}

func inUse(message string) error {
	return &serviceError{kind: ErrInUse, message: message}
}

func persistence(action string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, action, cause)
}

// PublicMessage returns the message that is safe to show to the caller.
func PublicMessage(err error) string {
	var detailed *serviceError
	if errors.As(err, &detailed) {
		return detailed.message
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not found"
	case errors.Is(err, ErrValidation):
		return "invalid input"
	case errors.Is(err, ErrInUse):
		return "record is in use"
	default:
		return "internal server error"
	}
}
