package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a write violates a uniqueness constraint,
	// e.g. a duplicate customer phone number or a concurrently inserted location.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is returned when the username/email and password
	// pair does not match a stored user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CreationFailedError reports a failed customer write: a uniqueness violation,
// an exhausted location dedup retry, or an unexpected persistence failure.
// The reason is safe to surface to the client as-is.
type CreationFailedError struct {
	Reason string
}

func (e *CreationFailedError) Error() string {
	return e.Reason
}

// NewCreationFailed builds a CreationFailedError with the given reason.
func NewCreationFailed(reason string) error {
	return &CreationFailedError{Reason: reason}
}

// IsCreationFailed reports whether err is (or wraps) a CreationFailedError.
func IsCreationFailed(err error) bool {
	var cf *CreationFailedError
	return errors.As(err, &cf)
}
