package services

import "errors"

// Workflow-level errors. Raw store errors never cross this boundary
// unwrapped; handlers map these onto response classes.
var (
	// ErrDuplicateEmail is returned when registering an email that
	// already has an account, regardless of role.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when an authenticated caller lacks the
	// role or ownership a operation requires.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports bad or missing input, detected before any
// persistence attempt.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationErr(msg string) error {
	return &ValidationError{msg: msg}
}
