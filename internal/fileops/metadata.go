package fileops

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// ExtractMetadata always returns fileId, fileName, fileType, sizeBytes,
// mimeType and checksum. For content that decodes as an image it also
// sets width and height. It never fails on content problems: a file that
// claims to be an image but doesn't decode simply omits the image keys.
func (l *Library) ExtractMetadata(f domain.File) map[string]any {
	sum := sha256.Sum256(f.Content())

	meta := map[string]any{
		"fileId":   f.ID(),
		"fileName": f.Name(),
		"fileType": f.Type(),
		"sizeBytes": f.Size(),
		"mimeType": mimeType(f.Type()),
		"checksum": hex.EncodeToString(sum[:]),
	}

	if img, _, err := decodeImage(f.Content()); err == nil {
		bounds := img.Bounds()
		meta["width"] = bounds.Dx()
		meta["height"] = bounds.Dy()
	}

	return meta
}
