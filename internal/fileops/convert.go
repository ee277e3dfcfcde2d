package fileops

import (
	"strings"

	"github.com/google/uuid"

	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// ConvertFormat decodes f as an image and re-encodes it as target ("jpg",
// "png" or "gif"), returning a fresh File whose name has its extension
// swapped to match.
func (l *Library) ConvertFormat(f domain.File, target string) (domain.File, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" || !f.IsImage() {
		return domain.File{}, fileerr.Unsupported("cannot convert %s to %q", f.Name(), target)
	}
	if !isSupportedType(target) || target == "pdf" {
		return domain.File{}, fileerr.Unsupported("cannot convert to type %s", target)
	}

	img, _, err := decodeImage(f.Content())
	if err != nil {
		return domain.File{}, fileerr.InvalidArgument("file %s does not decode as an image: %v", f.Name(), err)
	}

	out, ok := encodeImage(img, target)
	if !ok {
		return domain.File{}, fileerr.Unsupported("cannot encode image as %s", target)
	}

	return domain.NewFile(uuid.NewString(), swapExtension(f.Name(), target), out, target, int64(len(out))), nil
}

// swapExtension replaces name's extension (the portion after the last dot)
// with ext, or appends "."+ext when name has no dot.
func swapExtension(name, ext string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i] + "." + ext
	}
	return name + "." + ext
}
