package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"personmatch/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrMalformedInput, "load", "parse", "line 3", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrMalformedInput) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"malformed input", "load", "parse", "line 3", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerOrCause(t *testing.T) {
	if got := services.Wrap(nil, "", "", "", nil).Error(); got != "service failure" {
		t.Fatalf("unexpected message: %q", got)
	}
	err := services.Wrap(nil, "write", "", "", errors.New("disk full"))
	if got := err.Error(); got != "write: disk full" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
		kind string
	}{
		{nil, 0, ""},
		{services.Wrap(services.ErrInvalidArgument, "validate", "mode", "bad", nil), services.ExitInvalidArgument, "invalid_argument"},
		{fmt.Errorf("outer: %w", services.Wrap(services.ErrMalformedInput, "load", "", "", nil)), services.ExitMalformedInput, "malformed_input"},
		{services.Wrap(services.ErrOutput, "write", "", "", nil), services.ExitFailure, "output"},
		{services.Wrap(services.ErrConfiguration, "config", "", "", nil), services.ExitFailure, "configuration"},
		{errors.New("other"), services.ExitFailure, "internal"},
	}
	for _, tc := range cases {
		if got := services.ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
		if got := services.Kind(tc.err); got != tc.kind {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.kind)
		}
	}
}
