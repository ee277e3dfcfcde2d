package fileops

import (
	"math"
	"testing"

	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

func TestResizeImageScalesDownPreservingAspect(t *testing.T) {
	l := NewLibrary(t.TempDir(), 0, nil)
	f := domain.NewFile("id", "photo.png", pngBytes(200, 100), "png", 1)

	out, err := l.ResizeImage(f, 50, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name() != "resized_photo.png" {
		t.Errorf("Name() = %q, want %q", out.Name(), "resized_photo.png")
	}
	if out.Type() != "png" {
		t.Errorf("Type() = %q, want png", out.Type())
	}

	img, _, err := decodeImage(out.Content())
	if err != nil {
		t.Fatalf("resized content does not decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > 200 || b.Dy() > 100 {
		t.Errorf("resized dimensions %dx%d exceed original 200x100", b.Dx(), b.Dy())
	}
	if b.Dx() > 50 || b.Dy() > 50 {
		t.Errorf("resized dimensions %dx%d exceed requested bound 50x50", b.Dx(), b.Dy())
	}
}

func TestResizeImageNeverUpscales(t *testing.T) {
	l := NewLibrary(t.TempDir(), 0, nil)
	f := domain.NewFile("id", "small.png", pngBytes(10, 10), "png", 1)

	out, err := l.ResizeImage(f, 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, _, err := decodeImage(out.Content())
	if err != nil {
		t.Fatalf("resized content does not decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("dimensions = %dx%d, want unchanged 10x10", b.Dx(), b.Dy())
	}
}

func TestResizeImageRejectsInvalidDimensions(t *testing.T) {
	l := NewLibrary(t.TempDir(), 0, nil)
	f := domain.NewFile("id", "a.png", pngBytes(10, 10), "png", 1)

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 10}, {math.MaxInt, 10}, {10, math.MaxInt}} {
		if _, err := l.ResizeImage(f, dims[0], dims[1]); err == nil {
			t.Errorf("dims %v: expected error, got nil", dims)
		} else if fileerr.KindOf(err) != fileerr.KindInvalidArgument {
			t.Errorf("dims %v: KindOf() = %v, want InvalidArgument", dims, fileerr.KindOf(err))
		}
	}
}

func TestResizeImageRejectsUndecodableContent(t *testing.T) {
	l := NewLibrary(t.TempDir(), 0, nil)
	f := domain.NewFile("id", "a.png", []byte("not an image"), "png", 12)

	if _, err := l.ResizeImage(f, 50, 50); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestResizeImageRejectsNonImageFiles(t *testing.T) {
	l := NewLibrary(t.TempDir(), 0, nil)
	f := domain.NewFile("id", "a.pdf", []byte("%PDF-1.4"), "pdf", 8)

	_, err := l.ResizeImage(f, 50, 50)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if fileerr.KindOf(err) != fileerr.KindUnsupported {
		t.Errorf("KindOf() = %v, want Unsupported", fileerr.KindOf(err))
	}
}
