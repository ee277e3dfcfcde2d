package fileops

import (
	"os"
	"path/filepath"

	"github.com/docflex/gRPC-File-Processor/internal/fileerr"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// StoreFile writes f's content under <StorageDir>/<type>/<fileId>_<fileName>
// and returns that path. storeMu serializes every call on this Library so
// directory creation, the write and the dedup-cache mark happen one call at
// a time across concurrent workers. StoreFile does not consult the dedup
// cache before writing: it always writes, then marks f's ID seen.
func (l *Library) StoreFile(f domain.File) (string, error) {
	l.storeMu.Lock()
	defer l.storeMu.Unlock()

	dir := filepath.Join(l.StorageDir, f.Type())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fileerr.IO("failed to create storage directory for "+f.Name(), err)
	}

	path := filepath.Join(dir, f.ID()+"_"+f.Name())
	if err := os.WriteFile(path, f.Content(), 0o644); err != nil {
		return "", fileerr.IO("failed to write stored file "+f.Name(), err)
	}

	if l.dedup != nil {
		l.dedup.MarkSeen(f.ID())
	}

	return path, nil
}

// SeenBefore reports whether the dedup cache (if any) has already marked
// this file ID seen, without marking it itself. StoreFile does not call it.
func (l *Library) SeenBefore(fileID string) bool {
	if l.dedup == nil {
		return false
	}
	return l.dedup.MaybeSeen(fileID)
}
