package errors

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// Op identifies the operation that produced the error
type Op string

const (
	OpRead         Op = "read"
	OpWrite        Op = "write"
	OpFlush        Op = "flush"
	OpClose        Op = "close"
	OpReadExact    Op = "read_exact"
	OpWriteAll     Op = "write_all"
	OpReadToEnd    Op = "read_to_end"
	OpReadToString Op = "read_to_string"
	OpChain        Op = "chain"
	OpTake         Op = "take"
	OpCopy         Op = "copy"
	OpCompat       Op = "compat" // crossing into a foreign ecosystem
	OpHost         Op = "host"   // wasi stream host
)

// Kind categorizes the error
type Kind string

const (
	KindTransport     Kind = "transport"
	KindUnexpectedEOF Kind = "unexpected_eof"
	KindWriteZero     Kind = "write_zero"
	KindInvalidUTF8   Kind = "invalid_utf8"
	KindBadCount      Kind = "bad_count"
	KindClosed        Kind = "closed"
	KindBorrowed      Kind = "borrowed"
	KindNotFound      Kind = "not_found"
	KindUnsupported   Kind = "unsupported"
)

// Side tags which stream of a composed operation produced the error.
type Side string

const (
	SideNone   Side = ""
	SideFirst  Side = "first"
	SideSecond Side = "second"
	SideSource Side = "source"
	SideSink   Side = "sink"
)

// Sentinels for errors.Is. Zero fields act as wildcards.
var (
	ErrTransport     = &Error{Kind: KindTransport}
	ErrUnexpectedEOF = &Error{Kind: KindUnexpectedEOF}
	ErrWriteZero     = &Error{Kind: KindWriteZero}
	ErrInvalidUTF8   = &Error{Kind: KindInvalidUTF8}
	ErrBadCount      = &Error{Kind: KindBadCount}
	ErrClosed        = &Error{Kind: KindClosed}
	ErrBorrowed      = &Error{Kind: KindBorrowed}
)

// Error is the structured error type used by every combinator
type Error struct {
	Value  any
	Cause  error
	Op     Op
	Kind   Kind
	Side   Side
	Detail string
	// N is the number of bytes the operation had moved before failing.
	N int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Op))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Side != SideNone {
		b.WriteString(" from ")
		b.WriteString(string(e.Side))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Empty Op, Kind and Side on a target *Error match anything.
func (e *Error) Is(target error) bool {
	switch target {
	case io.ErrUnexpectedEOF:
		return e.Kind == KindUnexpectedEOF
	case io.ErrShortWrite:
		return e.Kind == KindWriteZero
	case fs.ErrClosed:
		return e.Kind == KindClosed
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Side != SideNone && t.Side != e.Side {
		return false
	}
	return true
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Side sets the originating side
func (b *Builder) Side(s Side) *Builder {
	b.err.Side = s
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Progress records how many bytes were moved before the failure
func (b *Builder) Progress(n int64) *Builder {
	b.err.N = n
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Transport wraps an error produced by a stream itself
func Transport(op Op, cause error, n int64) *Error {
	return &Error{
		Op:    op,
		Kind:  KindTransport,
		Cause: cause,
		N:     n,
	}
}

// FromSide wraps a stream error and records which stream produced it
func FromSide(op Op, side Side, cause error, n int64) *Error {
	return &Error{
		Op:    op,
		Kind:  KindTransport,
		Side:  side,
		Cause: cause,
		N:     n,
	}
}

// UnexpectedEOF creates a short-read error
func UnexpectedEOF(op Op, filled, want int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindUnexpectedEOF,
		Detail: fmt.Sprintf("end of stream after %d of %d bytes", filled, want),
		N:      int64(filled),
	}
}

// WriteZero creates an error for a sink that accepted nothing while data remained
func WriteZero(op Op, written int64, remaining int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindWriteZero,
		Side:   SideSink,
		Detail: fmt.Sprintf("sink accepted 0 bytes with %d remaining", remaining),
		N:      written,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(op Op, data []byte, offset int) *Error {
	preview := data[offset:]
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Op:     op,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence at byte %d: %x", offset, preview),
		N:      int64(len(data)),
	}
}

// BadCount creates the error used when a stream reports more bytes than it was given
func BadCount(op Op, n, size int) *Error {
	return &Error{
		Op:     op,
		Kind:   KindBadCount,
		Detail: fmt.Sprintf("stream reported %d bytes for a %d byte buffer", n, size),
		Value:  n,
	}
}

// Closed creates a closed-stream error
func Closed(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindClosed,
		Detail: what + " is closed",
	}
}

// Borrowed creates an error for a handle that is already in use
func Borrowed(op Op, handle uint32) *Error {
	return &Error{
		Op:     op,
		Kind:   KindBorrowed,
		Detail: fmt.Sprintf("handle %d is borrowed by another operation", handle),
		Value:  handle,
	}
}

// NotFound creates a not-found error
func NotFound(op Op, what string, handle uint32) *Error {
	return &Error{
		Op:     op,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %d not found", what, handle),
		Value:  handle,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Box erases a contract error before it crosses into a foreign ecosystem.
// Errors that are already *Error pass through.
func Box(cause error) error {
	if cause == nil {
		return nil
	}
	if e, ok := cause.(*Error); ok {
		return e
	}
	return &Error{
		Op:    OpCompat,
		Kind:  KindTransport,
		Cause: cause,
	}
}
