package domain

// FileUploadRequest is one element of the client-streaming and
// bidirectional-streaming RPC shapes (spec §6): a single file plus the
// operations to run on it.
type FileUploadRequest struct {
	File       File
	Operations []OperationKind
}
