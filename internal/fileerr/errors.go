// Package fileerr defines the error taxonomy from the file processing
// workflow's error-handling design: InvalidArgument, IO, Unsupported, and
// Internal. The core never returns bare errors for anything that reaches a
// task boundary — everything is wrapped in one of these kinds so the wire
// adapter (internal/api) can map it to the right status without the core
// knowing anything about RPC statuses.
package fileerr

import (
	"errors"
	"fmt"
)

// Kind tags an error with the category from spec §7.
type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindIO              Kind = "IO"
	KindUnsupported      Kind = "UNSUPPORTED"
	KindInternal         Kind = "INTERNAL"
)

// Error wraps an underlying cause with a Kind for classification.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// InvalidArgument builds a KindInvalidArgument error from a formatted
// message — malformed file metadata, unsupported type, out-of-range
// parameters.
func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// IO wraps a filesystem error as KindIO.
func IO(msg string, cause error) error {
	return &Error{Kind: KindIO, msg: msg, err: cause}
}

// Unsupported builds a KindUnsupported error — an operation not applicable
// to a given file.
func Unsupported(format string, args ...any) error {
	return &Error{Kind: KindUnsupported, msg: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected error as KindInternal.
func Internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, msg: msg, err: cause}
}

// KindOf classifies err, defaulting to KindInternal for anything that isn't
// one of this package's tagged errors — the same default the wire mapping
// layer uses for "any other exception".
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindInternal
}
