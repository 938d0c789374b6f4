package apperr

import "fmt"

// Kind classifies a business failure so the handler layer can pick the
// right HTTP status without inspecting error strings.
type Kind int

const (
	// KindNotFound means a referenced entity is absent.
	KindNotFound Kind = iota + 1
	// KindForbidden means the caller lacks rights over the target entity.
	KindForbidden
	// KindConflict means the state already satisfies (or contradicts) the
	// precondition, e.g. a duplicate friend request.
	KindConflict
	// KindValidation means the input set failed a business check, e.g.
	// candidates that are not friends of the group owner.
	KindValidation
)

// Error is a business error with a classification.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden builds a KindForbidden error.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
