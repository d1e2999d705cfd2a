// Package errors provides coded errors for slidefit.
//
// An [Error] carries a [Code] next to its message. The CLI prints only the
// message, while the HTTP API maps the code's [Kind] to a status.
//
//	err := errors.New(errors.ErrCodeInvalidAspectRatio, "invalid aspect ratio %q", v)
//	if errors.Is(err, errors.ErrCodeInvalidAspectRatio) {
//	    ...
//	}
//	err = errors.Wrap(errors.ErrCodeFileNotFound, cause, "read %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies an error condition.
type Code string

const (
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidAspectRatio Code = "INVALID_ASPECT_RATIO"
	ErrCodeInvalidMode        Code = "INVALID_MODE"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidPath        Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Kind groups codes by who has to act on them.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindUnsupported
	KindTimeout
)

// Kind classifies c. Every INVALID_* code is KindInvalid.
func (c Code) Kind() Kind {
	switch {
	case strings.HasPrefix(string(c), "INVALID_"):
		return KindInvalid
	case c == ErrCodeNotFound || c == ErrCodeFileNotFound:
		return KindNotFound
	case c == ErrCodeUnsupported:
		return KindUnsupported
	case c == ErrCodeTimeout:
		return KindTimeout
	}
	return KindInternal
}

// Error is an error with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix and cause, or
// err.Error() for foreign errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
