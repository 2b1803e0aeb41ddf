// Package apperrors defines the recoverable error categories surfaced by
// the service layer. Handlers map each category to an HTTP status; anything
// that is none of these is treated as an internal failure.
package apperrors

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthorizationError reports that the acting user may not perform the
// operation on the target entity.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// ConflictError reports an invariant violation: duplicate request, already
// friends, self-request, duplicate email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Validation(msg string) error    { return &ValidationError{Message: msg} }
func NotFound(msg string) error      { return &NotFoundError{Message: msg} }
func Authorization(msg string) error { return &AuthorizationError{Message: msg} }
func Conflict(msg string) error      { return &ConflictError{Message: msg} }
