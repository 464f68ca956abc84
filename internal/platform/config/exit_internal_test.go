package config

import (
	"errors"
	"strings"
	"testing"
)

func TestReportExitCodes(t *testing.T) {
	var out strings.Builder
	if code := report(&out, errors.New("boom")); code != 1 {
		t.Fatalf("plain error code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "Error: boom") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	if code := report(&out, &ExitError{Code: 3}); code != 3 {
		t.Fatalf("exit error code = %d, want 3", code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected silent exit, got %q", out.String())
	}
}
