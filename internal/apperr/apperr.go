// Package apperr defines the typed errors shared by the pricing and auth
// services. Handlers translate each kind into an HTTP status; the kinds
// themselves carry no transport assumptions.
package apperr

import "errors"

// Kind classifies a failure so higher layers can map it to a response.
type Kind int

const (
	KindValidation Kind = iota // malformed or missing input, user-correctable
	KindNotFound               // no matching route or base-cost record
	KindConflict               // duplicate email on sign-up
	KindAuth                   // bad credentials, deliberately generic
	KindStore                  // persistence unreachable
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// Validation reports user-correctable input problems. The message is
// surfaced verbatim to the client.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// NotFound reports a missing route or base-cost record.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict reports a uniqueness violation such as a duplicate email.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// InvalidCredentials is the single construction path for sign-in failures.
// Unknown email and wrong password must be indistinguishable to the caller,
// so no other authentication error may be created in its place.
func InvalidCredentials() *Error {
	return &Error{Kind: KindAuth, Message: "invalid credentials"}
}

// Store wraps a persistence failure. The cause is kept for logging but the
// message shown to clients stays generic.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "storage unavailable", Err: err}
}

// KindOf extracts the kind from err. Errors that are not *Error are treated
// as store failures, the fail-safe default for unclassified problems.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
