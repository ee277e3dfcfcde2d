package fileops

import (
	"math"

	"github.com/google/uuid"

	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// ResizeImage decodes f, scales it to fit within maxW x maxH (preserving
// aspect ratio, never upscaling past the original dimensions), re-encodes
// it in f's own type, and returns a fresh File named "resized_<name>".
func (l *Library) ResizeImage(f domain.File, maxW, maxH int) (domain.File, error) {
	if !f.IsImage() {
		return domain.File{}, fileerr.Unsupported("cannot resize non-image file %s", f.Name())
	}
	if maxW <= 0 || maxH <= 0 || maxW == math.MaxInt || maxH == math.MaxInt {
		return domain.File{}, fileerr.InvalidArgument("invalid resize dimensions: %dx%d", maxW, maxH)
	}

	img, _, err := decodeImage(f.Content())
	if err != nil {
		return domain.File{}, fileerr.InvalidArgument("file %s does not decode as an image: %v", f.Name(), err)
	}

	scaled := scaleImage(img, maxW, maxH)

	out, ok := encodeImage(scaled, f.Type())
	if !ok {
		return domain.File{}, fileerr.Unsupported("cannot encode resized image as %s", f.Type())
	}

	return domain.NewFile(uuid.NewString(), "resized_"+f.Name(), out, f.Type(), int64(len(out))), nil
}
