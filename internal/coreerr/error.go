// Package coreerr defines the error taxonomy shared by every package in
// this module: NotACount, ChainBroken, FetchFailed, DatabaseError,
// ValidationFailure, Overflow and Archived.
package coreerr

import "fmt"

// Kind classifies a core error into one of the taxonomy's categories.
type Kind uint8

const (
	// NotACount means a post body could not be parsed to a token under
	// the active form.
	NotACount Kind = iota

	// ChainBroken means the chain walker could not locate an ancestor
	// post.
	ChainBroken

	// FetchFailed means an external post-source call failed, possibly
	// after retries.
	FetchFailed

	// DatabaseError means a persistence sink operation failed.
	DatabaseError

	// ValidationFailure means a specific record violates the active
	// posting rule.
	ValidationFailure

	// Overflow means a DFA enumeration produced a value exceeding the
	// implementation's declared integer width.
	Overflow

	// Archived means the chain walker reached a thread with no
	// resolvable ancestor because the chain's root is archived.
	Archived
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case NotACount:
		return "NotACount"
	case ChainBroken:
		return "ChainBroken"
	case FetchFailed:
		return "FetchFailed"
	case DatabaseError:
		return "DatabaseError"
	case ValidationFailure:
		return "ValidationFailure"
	case Overflow:
		return "Overflow"
	case Archived:
		return "Archived"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the concrete error type carried by every Kind above. PostID is
// the offending post's id, when one is known.
type Error struct {
	Kind   Kind
	PostID string
	Msg    string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	tag := e.Kind.String()
	if e.PostID != "" {
		tag = fmt.Sprintf("%s(%s)", tag, e.PostID)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", tag, e.Msg, e.Cause)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", tag, e.Msg)
	}
	return tag
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Kind, enabling
// errors.Is(err, coreerr.New(coreerr.NotACount, "", "")) style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, postID, msg string) *Error {
	return &Error{Kind: kind, PostID: postID, Msg: msg}
}

// Wrap builds an *Error of the given kind around a cause.
func Wrap(kind Kind, postID, msg string, cause error) *Error {
	return &Error{Kind: kind, PostID: postID, Msg: msg, Cause: cause}
}
