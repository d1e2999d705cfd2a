package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidMode, "unknown mode %q", "poster"), `INVALID_MODE: unknown mode "poster"`},
		{Wrap(ErrCodeFileNotFound, cause, "read %s", "talk.md"), "FILE_NOT_FOUND: read talk.md: permission denied"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write cache")
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through errors.Is")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestCodeThroughChain(t *testing.T) {
	inner := New(ErrCodeInvalidAspectRatio, "bad ratio")
	outer := fmt.Errorf("fit slides: %w", inner)

	tests := []struct {
		name string
		err  error
		code Code
		msg  string
	}{
		{"direct", inner, ErrCodeInvalidAspectRatio, "bad ratio"},
		{"wrapped", outer, ErrCodeInvalidAspectRatio, "bad ratio"},
		{"foreign", errors.New("boom"), "", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.code {
				t.Errorf("CodeOf = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%v, %q) = false", tt.err, tt.code)
			}
			if Is(tt.err, ErrCodeTimeout) {
				t.Error("Is matched an unrelated code")
			}
			if got := UserMessage(tt.err); got != tt.msg {
				t.Errorf("UserMessage = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := map[Code]Kind{
		ErrCodeInvalidInput: KindInvalid,
		ErrCodeInvalidPath:  KindInvalid,
		Code("INVALID_X"):   KindInvalid,
		ErrCodeNotFound:     KindNotFound,
		ErrCodeFileNotFound: KindNotFound,
		ErrCodeUnsupported:  KindUnsupported,
		ErrCodeTimeout:      KindTimeout,
		ErrCodeInternal:     KindInternal,
		Code(""):            KindInternal,
	}
	for code, want := range tests {
		if got := code.Kind(); got != want {
			t.Errorf("%q.Kind() = %v, want %v", code, got, want)
		}
	}
}
