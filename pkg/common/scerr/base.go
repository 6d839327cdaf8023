package scerr

import (
	"errors"
	"fmt"
)

// Kind categorizes every error the core can raise. There is exactly one
// error type in the package; callers branch on Kind rather than a type
// switch.
type Kind string

const (
	// NotReadable: file missing, not a regular file, or unreadable during
	// blob construction or index.add.
	NotReadable Kind = "not-readable"

	// PathspecNoMatch: remove called on a path neither tracked nor staged.
	PathspecNoMatch Kind = "pathspec-no-match"

	// HasLocalModifications: remove without force on a tracked, modified
	// working-tree file.
	HasLocalModifications Kind = "has-local-modifications"

	// NotFound: object store read for a missing uid.
	NotFound Kind = "not-found"

	// Corrupt: decompression failure, header parse failure, size mismatch,
	// or hash mismatch on Blob.read.
	Corrupt Kind = "corrupt"

	// Format: compression/decompression rejects malformed input.
	Format Kind = "format"

	// IO: any other underlying filesystem error.
	IO Kind = "io"
)

// Error is the one error type the core raises, differentiated by Kind.
type Error struct {
	Kind    Kind
	Op      string
	Path    string
	Message string
	Err     error
}

// New builds an *Error wrapping err (which may be nil), with no path.
func New(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// WithPath attaches the path the error concerns and returns the receiver.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", e.Kind, e.Op, msg, e.Path)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, msg)
}

// Unwrap returns the underlying error for errors.Is()/errors.As() support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind alone: two *Error values are equal under errors.Is if
// their Kinds match, regardless of Op, Message, or wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is(err, scerr.NotFoundErr)-style checks.
var (
	NotReadableErr = &Error{Kind: NotReadable}
	NotFoundErr    = &Error{Kind: NotFound}
	CorruptErr     = &Error{Kind: Corrupt}
	FormatErr      = &Error{Kind: Format}
)

// Of reports the Kind of err, or "" if err is not (or does not wrap) an
// *Error.
func Of(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is (or wraps) an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	return Of(err) == kind
}
