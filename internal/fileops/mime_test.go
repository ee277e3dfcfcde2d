package fileops

import "testing"

func TestIsSupportedType(t *testing.T) {
	for _, typ := range []string{"pdf", "jpg", "jpeg", "png", "gif"} {
		if !isSupportedType(typ) {
			t.Errorf("expected %q to be supported", typ)
		}
	}
	for _, typ := range []string{"txt", "docx", "exe", ""} {
		if isSupportedType(typ) {
			t.Errorf("expected %q to be unsupported", typ)
		}
	}
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		"pdf":  "application/pdf",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
		"bin":  "application/octet-stream",
	}
	for typ, want := range tests {
		if got := mimeType(typ); got != want {
			t.Errorf("mimeType(%q) = %q, want %q", typ, got, want)
		}
	}
}
