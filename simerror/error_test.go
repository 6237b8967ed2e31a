package simerror

import (
	"errors"
	"io"
	"testing"
)

func TestNewKeepsTrailingCause(t *testing.T) {
	err := New("read snapshot: %v", io.ErrUnexpectedEOF)
	if err.Error() != "read snapshot: unexpected EOF" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected cause to be unwrapped")
	}
}

func TestNewWithoutCause(t *testing.T) {
	err := New("tick rate must be positive, got %d", 0)
	if errors.Unwrap(err) != nil {
		t.Fatalf("expected no cause, got %v", errors.Unwrap(err))
	}
}
