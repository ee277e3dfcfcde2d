package api

import (
	"context"
	"log/slog"
	"sync"

	"github.com/docflex/gRPC-File-Processor/internal/workflow"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// executorService implements Service over a single shared
// workflow.Executor, matching spec §5's "request-scoped workflow executor
// driver over a process-wide worker pool" shared-resource policy.
type executorService struct {
	exec *workflow.Executor
}

// NewService builds a Service backed by exec.
func NewService(exec *workflow.Executor) Service {
	return &executorService{exec: exec}
}

func (s *executorService) ProcessFile(ctx context.Context, req domain.Request) (domain.Summary, error) {
	return s.exec.ProcessWorkflow(ctx, req)
}

func (s *executorService) StreamFileOperations(ctx context.Context, req domain.Request, sink func(domain.OperationResult) error) error {
	handle := s.exec.ProcessWorkflowStreamed(ctx, req, sink)
	handle.Wait()
	return nil
}

func (s *executorService) UploadFiles(ctx context.Context, uploads <-chan domain.FileUploadRequest) (domain.Summary, error) {
	var files []domain.File
	perFile := map[string][]domain.OperationKind{}

	for u := range uploads {
		files = append(files, u.File)
		perFile[u.File.ID()] = u.Operations
	}

	req, err := domain.NewRequest(files, nil, perFile)
	if err != nil {
		return domain.Summary{}, err
	}
	return s.exec.ProcessWorkflow(ctx, req)
}

func (s *executorService) LiveFileProcessing(ctx context.Context, uploads <-chan domain.FileUploadRequest, sink func(domain.OperationResult) error) error {
	var wg sync.WaitGroup
	var sinkMu sync.Mutex
	shared := func(r domain.OperationResult) error {
		sinkMu.Lock()
		defer sinkMu.Unlock()
		return sink(r)
	}

	for u := range uploads {
		req, err := domain.NewRequest([]domain.File{u.File}, nil, map[string][]domain.OperationKind{u.File.ID(): u.Operations})
		if err != nil {
			slog.Default().Debug("dropping malformed upload on live stream", "fileID", u.File.ID(), "error", err)
			continue
		}

		wg.Add(1)
		go func(r domain.Request) {
			defer wg.Done()
			s.exec.ProcessWorkflowStreamed(ctx, r, shared).Wait()
		}(req)
	}

	wg.Wait()
	return nil
}
