package domain

import "errors"

// ErrNoFiles is returned by NewRequest when the files slice is empty — the
// one invariant the spec calls out explicitly for Request.
var ErrNoFiles = errors.New("domain: request must contain at least one file")

// Request is the immutable input to a workflow: an ordered, non-empty list
// of files, a default operation sequence applied to files without a
// per-file override, and the per-file overrides themselves.
type Request struct {
	files              []File
	defaultOperations  []OperationKind
	perFileOperations  map[string][]OperationKind
}

// NewRequest defensively copies every collection so the caller's slices and
// map can be reused or mutated after construction without affecting the
// Request.
func NewRequest(files []File, defaultOperations []OperationKind, perFileOperations map[string][]OperationKind) (Request, error) {
	if len(files) == 0 {
		return Request{}, ErrNoFiles
	}
	r := Request{
		files:             append([]File(nil), files...),
		defaultOperations: append([]OperationKind(nil), defaultOperations...),
	}
	if len(perFileOperations) > 0 {
		r.perFileOperations = make(map[string][]OperationKind, len(perFileOperations))
		for id, ops := range perFileOperations {
			r.perFileOperations[id] = append([]OperationKind(nil), ops...)
		}
	}
	return r, nil
}

// Files returns a read-only copy of the ordered file list.
func (r Request) Files() []File { return append([]File(nil), r.files...) }

// DefaultOperations returns a read-only copy of the default operation
// sequence.
func (r Request) DefaultOperations() []OperationKind {
	return append([]OperationKind(nil), r.defaultOperations...)
}

// OperationsFor returns the operation sequence for fileID: its per-file
// override if one was given, else the request's default sequence.
func (r Request) OperationsFor(fileID string) []OperationKind {
	if ops, ok := r.perFileOperations[fileID]; ok {
		return append([]OperationKind(nil), ops...)
	}
	return r.DefaultOperations()
}
