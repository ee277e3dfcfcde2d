package fileerr

import (
	"errors"
	"testing"
)

func TestKindOfClassifiesTaggedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid argument", InvalidArgument("bad %s", "name"), KindInvalidArgument},
		{"io", IO("write failed", errors.New("disk full")), KindIO},
		{"unsupported", Unsupported("no ocr for %s", "txt"), KindUnsupported},
		{"internal", Internal("boom", errors.New("panic")), KindInternal},
		{"plain error defaults to internal", errors.New("anything"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := IO("write failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := IO("write failed", errors.New("disk full"))
	if err.Error() != "write failed: disk full" {
		t.Errorf("Error() = %q, want %q", err.Error(), "write failed: disk full")
	}
}
