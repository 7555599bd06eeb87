package services

import "errors"

var (
	ErrUserNotFound        = errors.New("User not found")
	ErrProductNotFound     = errors.New("Product not found")
	ErrTransactionNotFound = errors.New("Transaction not found")
	ErrCategoryNotFound    = errors.New("Category not found")
	ErrBudgetNotFound      = errors.New("Budget not found")

	ErrEmailTaken     = errors.New("Email already exists")
	ErrCategoryExists = errors.New("Category with this name already exists")
	ErrBudgetExists   = errors.New("Budget already exists for this month and year")

	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidState       = errors.New("Invalid OAuth state")
	ErrForbidden          = errors.New("Access denied")
	ErrOAuthDisabled      = errors.New("Google OAuth is not configured")
)

// ValidationError is a client input error. Handlers map it to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
