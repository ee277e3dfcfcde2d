package fileops

import (
	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// DefaultMaxFileSize is the ceiling validate enforces when the library
// wasn't configured with an override.
const DefaultMaxFileSize = 100 * 1024 * 1024 // 100 MiB

// Validate checks a File against every rule in spec §4.1, returning an
// InvalidArgument fileerr on the first violation found. It never mutates
// or retains the file.
func (l *Library) Validate(f domain.File) error {
	if f.Name() == "" {
		return fileerr.InvalidArgument("file name is empty")
	}
	if f.Type() == "" {
		return fileerr.InvalidArgument("file type is empty")
	}
	if f.Size() <= 0 {
		return fileerr.InvalidArgument("file is empty: %s", f.Name())
	}
	if f.Size() > l.maxFileSize() {
		return fileerr.InvalidArgument("file %s exceeds maximum size of %d bytes", f.Name(), l.maxFileSize())
	}
	if !f.HasValidName() {
		return fileerr.InvalidArgument("invalid file name: %s", f.Name())
	}
	if !isSupportedType(f.Type()) {
		return fileerr.InvalidArgument("unsupported file type: %s", f.Type())
	}
	if f.IsImage() {
		if _, _, err := decodeImage(f.Content()); err != nil {
			return fileerr.InvalidArgument("file %s declares an image type but its content does not decode as an image: %v", f.Name(), err)
		}
	}
	return nil
}

func (l *Library) maxFileSize() int64 {
	if l.MaxFileSize > 0 {
		return l.MaxFileSize
	}
	return DefaultMaxFileSize
}
