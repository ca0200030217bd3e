package services

import "errors"

// ValidationError is a user-correctable input problem. Handlers re-render the
// form with Message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrPasswordMismatch = &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	ErrPasswordTooShort = &ValidationError{Field: "password", Message: "Password must be at least 6 characters"}
	ErrPasswordTooLong  = &ValidationError{Field: "password", Message: "Password must be at most 72 bytes"}

	ErrDuplicateIdentity  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
)

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
