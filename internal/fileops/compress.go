package fileops

import (
	"compress/gzip"
	"os"
	"path/filepath"

	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// CompressFile GZIPs the file's content into a fresh temporary directory,
// named "<fileName>.gz", and returns its path.
func (l *Library) CompressFile(f domain.File) (string, error) {
	tempDir, err := os.MkdirTemp("", "compressed_files")
	if err != nil {
		return "", fileerr.IO("failed to create temp directory", err)
	}

	outputPath := filepath.Join(tempDir, f.Name()+".gz")
	out, err := os.Create(outputPath)
	if err != nil {
		return "", fileerr.IO("failed to create compressed output for "+f.Name(), err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := gz.Write(f.Content()); err != nil {
		gz.Close()
		return "", fileerr.IO("failed to compress "+f.Name(), err)
	}
	if err := gz.Close(); err != nil {
		return "", fileerr.IO("failed to finalize compressed output for "+f.Name(), err)
	}

	return outputPath, nil
}
