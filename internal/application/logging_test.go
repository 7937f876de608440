package application

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}

	if got := defaultLogger(nil); got != slog.Default() {
		t.Fatalf("expected default logger when none provided")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not found", err: ErrNotFound, want: "not_found"},
		{name: "unauthorized", err: ErrUnauthorized, want: "unauthorized"},
		{name: "invalid credentials", err: ErrInvalidCredentials, want: "invalid_credentials"},
		{name: "not confirmed", err: ErrNotConfirmed, want: "not_confirmed"},
		{name: "validation", err: &ValidationError{FieldErrors: map[string]string{"name": "required"}}, want: "validation"},
		{name: "invalid transition", err: &InvalidTransitionError{BookingID: 1, From: BookingStatusConfirmed, To: BookingStatusConfirmed}, want: "invalid_transition"},
		{name: "unexpected", err: errors.New("boom"), want: "unexpected"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ErrorKind(tc.err); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
