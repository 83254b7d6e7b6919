package service

import (
	"errors"
	"strings"

	"billdocs/internal/billing"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrNotFound           = errors.New("document not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateReference = errors.New("display reference already in use")
	ErrInvalidTransition  = billing.ErrInvalidTransition
	ErrExportUnavailable  = errors.New("document export is not configured")
)

// ValidationError lists every rejected input field. It matches ErrValidation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
