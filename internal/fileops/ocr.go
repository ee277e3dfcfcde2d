package fileops

import (
	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// ocrStubText is the fixed placeholder PerformOCR returns for files it
// claims to support — there is no real OCR engine wired in, by design
// (spec §1 Non-goals).
const ocrStubText = "OCR text would be returned here"

// PerformOCR is a stub: it succeeds with a fixed placeholder for images
// and PDFs, and fails Unsupported for everything else.
func (l *Library) PerformOCR(f domain.File) (string, error) {
	if !f.IsImage() && !f.IsPDF() {
		return "", fileerr.Unsupported("OCR not supported for type %s", f.Type())
	}
	return ocrStubText, nil
}
