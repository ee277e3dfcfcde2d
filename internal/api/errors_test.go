package api

import (
	"errors"
	"testing"

	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"invalid argument", fileerr.InvalidArgument("bad name"), "INVALID_ARGUMENT"},
		{"io error", fileerr.IO("disk full", errors.New("enospc")), "INTERNAL"},
		{"unsupported", fileerr.Unsupported("no ocr"), "INTERNAL"},
		{"internal", fileerr.Internal("boom", errors.New("x")), "INTERNAL"},
		{"plain error", errors.New("whatever"), "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := MapError(tt.err)
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	code, message := MapError(nil)
	if code != "" || message != "" {
		t.Errorf("MapError(nil) = (%q, %q), want empty", code, message)
	}
}
