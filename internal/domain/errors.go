package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrPeriodNotFound  = fmt.Errorf("period %w", ErrNotFound)
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoValidRows     = errors.New("no valid rows to import")
	ErrUnknownImporter = errors.New("importing user is not an active user")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
