package usecase

import (
	"errors"

	"shop-backend/pkg/utils"
)

var (
	// ErrInvalidCredentials is the single failure for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid id")
)

const (
	msgEmailTaken   = "Email has already been taken"
	msgCategoryGone = "Category must exist"
	fieldEmail      = "email"
	fieldPassword   = "password"
	fieldCategoryID = "category_id"
)

// ValidationError carries field-level failures found before persistence.
type ValidationError struct {
	Errors utils.ValidationErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Errors.Error()
}

func newValidationError(errs utils.ValidationErrors) error {
	return &ValidationError{Errors: errs}
}

func fieldError(field, message string) error {
	return newValidationError(utils.ValidationErrors{{Field: field, Message: message}})
}
