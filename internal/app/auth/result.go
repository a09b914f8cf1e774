// Package auth implements the account flows: registration, login, logout,
// password change and account deletion. Validation order, duplicate
// detection and the failure taxonomy are identical for every Directory
// backend; only the storage behind the Directory differs.
package auth

import "errors"

// Kind classifies a failed flow operation. The set is closed: backend or
// provider errors are mapped into one of these kinds at the boundary and
// never leak their own codes into the UI layer.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindDuplicateNationalID Kind = "duplicate_national_id"
	KindDuplicateUsername   Kind = "duplicate_username"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindUserNotFound        Kind = "user_not_found"
	KindStorage             Kind = "storage"
)

// Error is the tagged failure result of a flow operation. Message is
// human-readable and safe to show to the user as-is.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the failure kind from an error returned by a flow
// operation. ok is false for nil or foreign errors.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// MessageOf returns the user-facing message of a flow error, or a generic
// fallback for unexpected errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return msgGenericFailure
}

// Directory sentinel errors. Implementations return these (possibly
// wrapped); the flow maps them onto the closed Kind taxonomy.
var (
	ErrDuplicateNationalID = errors.New("national id already registered")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
)
