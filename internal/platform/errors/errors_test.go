package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"testing"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(CodeTSParseFailed, "parse ts", io.ErrUnexpectedEOF)
	if got := err.Error(); got != "parse ts: unexpected EOF" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load: %w", New(CodeLocaleDuplicate, "duplicate fi"))
	if !HasCode(err, CodeLocaleDuplicate) {
		t.Fatal("expected wrapped code match")
	}
	if HasCode(err, CodeLocaleMismatch) {
		t.Fatal("unexpected match for other code")
	}
	if got := CodeOf(err); got != CodeLocaleDuplicate {
		t.Fatalf("CodeOf = %q, want %q", got, CodeLocaleDuplicate)
	}
	if got := CodeOf(io.EOF); got != CodeUnknown {
		t.Fatalf("CodeOf(io.EOF) = %q, want %q", got, CodeUnknown)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeMessageNotFound, http.StatusNotFound},
		{CodeLocaleUnknown, http.StatusNotFound},
		{CodeMessageIDBlank, http.StatusBadRequest},
		{CodeLocaleDuplicate, http.StatusConflict},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Fatalf("%s.HTTPStatus() = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestWithMetadataKeepsValues(t *testing.T) {
	err := WithMetadata(CodeMessageNotFound, "missing", map[string]string{"ID": "x"})
	if err.Metadata["ID"] != "x" {
		t.Fatalf("metadata = %v", err.Metadata)
	}
	wrapped := WrapWithMetadata(CodeNotFound, "missing", map[string]string{"Locale": "fi"}, io.EOF)
	if wrapped.Metadata["Locale"] != "fi" || wrapped.Cause != io.EOF {
		t.Fatalf("wrapped = %+v", wrapped)
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodeMessageNotFound, "missing", map[string]string{"ID": "fillari-x"})
	if got := err.LocalizedMessage("en"); got != "Message fillari-x does not exist" {
		t.Fatalf("en = %q", got)
	}
	if got := err.LocalizedMessage("fi-FI"); got != "Viestiä fillari-x ei ole olemassa" {
		t.Fatalf("fi = %q", got)
	}
	var nilErr *Error
	if got := nilErr.LocalizedMessage("en"); got != "" {
		t.Fatalf("nil = %q", got)
	}
}
