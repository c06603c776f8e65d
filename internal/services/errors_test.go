package services_test

import (
	"errors"
	"strings"
	"testing"

	"chaptersplit/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "audio", "transcode", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"audio", "transcode", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKindMapping(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrInput, "transcript", "parse", "bad", nil), "input"},
		{services.Wrap(services.ErrConfiguration, "exclusions", "load", "", nil), "configuration"},
		{services.Wrap(services.ErrTimeout, "audio", "extract", "", nil), "timeout"},
		{services.Wrap(services.ErrExternalTool, "audio", "extract", "", nil), "external_tool"},
		{errors.New("other"), "transient"},
	}
	for _, tc := range cases {
		if got := services.Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestRetryable(t *testing.T) {
	if !services.Retryable(services.Wrap(services.ErrTimeout, "audio", "transcode", "", nil)) {
		t.Fatal("expected timeout to be retryable")
	}
	if services.Retryable(services.Wrap(services.ErrExternalTool, "audio", "transcode", "", nil)) {
		t.Fatal("expected tool failure to be final")
	}
}
