package lcoe

import (
	"errors"
	"fmt"

	"lcoe-calculator/internal/model"
)

var (
	// ErrInvalidInput wraps every validation failure. Match with errors.Is.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateResult is reported by Result.Err when no energy is produced.
	ErrDegenerateResult = errors.New("degenerate result: total energy generated is not positive")
)

func invalid(field, reason string) error {
	return wrapInvalid(&model.InputError{Field: field, Reason: reason})
}

func wrapInvalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
