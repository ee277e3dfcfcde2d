package api

import (
	"context"

	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// Service is the four RPC-shaped endpoints from spec §6, realized as plain
// Go interfaces rather than generated protobuf/grpc stubs — wire framing
// and request/response encoding stay out of the core's scope.
type Service interface {
	// ProcessFile is the unary endpoint: one request, one summary.
	ProcessFile(ctx context.Context, req domain.Request) (domain.Summary, error)

	// StreamFileOperations is the server-streaming endpoint: one request,
	// a stream of per-task results pushed into sink as they complete.
	StreamFileOperations(ctx context.Context, req domain.Request, sink func(domain.OperationResult) error) error

	// UploadFiles is the client-streaming endpoint: drains uploads, builds
	// one workflow from everything received, and runs it in batch mode.
	UploadFiles(ctx context.Context, uploads <-chan domain.FileUploadRequest) (domain.Summary, error)

	// LiveFileProcessing is the bidirectional endpoint: each inbound file
	// starts its own one-file streamed workflow concurrently, fanning every
	// workflow's results into the shared sink, one call at a time.
	LiveFileProcessing(ctx context.Context, uploads <-chan domain.FileUploadRequest, sink func(domain.OperationResult) error) error
}
