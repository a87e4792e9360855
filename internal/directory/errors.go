package directory

import "errors"

// Kind classifies a directory failure for transport-layer mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidArgument
	KindConflict
	KindUnavailable
)

// Error carries a classification and a user-facing message. The message is
// what ends up in the JSON error body, so it must stay presentable.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf returns the classification of err, or KindInternal for anything
// that is not a directory error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
