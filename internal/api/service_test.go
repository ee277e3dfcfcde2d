package api

import (
	"context"
	"testing"

	"github.com/docflex/gRPC-File-Processor/internal/fileops"
	"github.com/docflex/gRPC-File-Processor/internal/metrics"
	"github.com/docflex/gRPC-File-Processor/internal/workerpool"
	"github.com/docflex/gRPC-File-Processor/internal/workflow"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	pool := workerpool.New(workerpool.Config{CoreWorkers: 2, MaxWorkers: 4, QueueCapacity: 16})
	t.Cleanup(pool.Shutdown)
	ops := fileops.NewLibrary(t.TempDir(), 0, nil)
	exec := workflow.NewExecutor(pool, ops, metrics.New(), nil)
	return NewService(exec)
}

func TestServiceProcessFile(t *testing.T) {
	svc := newTestService(t)
	req, err := domain.NewRequest(
		[]domain.File{domain.NewFile("f1", "a.pdf", []byte("%PDF-1.4"), "pdf", 8)},
		[]domain.OperationKind{domain.OpValidate},
		nil,
	)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	summary, err := svc.ProcessFile(context.Background(), req)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if summary.SuccessfulCount != 1 {
		t.Errorf("SuccessfulCount = %d, want 1", summary.SuccessfulCount)
	}
}

func TestServiceUploadFilesDrainsChannelAndBuildsOneWorkflow(t *testing.T) {
	svc := newTestService(t)

	uploads := make(chan domain.FileUploadRequest, 2)
	uploads <- domain.FileUploadRequest{
		File:       domain.NewFile("f1", "a.pdf", []byte("%PDF-1.4"), "pdf", 8),
		Operations: []domain.OperationKind{domain.OpValidate},
	}
	uploads <- domain.FileUploadRequest{
		File:       domain.NewFile("f2", "b.pdf", []byte("%PDF-1.4"), "pdf", 8),
		Operations: []domain.OperationKind{domain.OpValidate},
	}
	close(uploads)

	summary, err := svc.UploadFiles(context.Background(), uploads)
	if err != nil {
		t.Fatalf("UploadFiles failed: %v", err)
	}
	if summary.TotalFiles != 2 || summary.SuccessfulCount != 2 {
		t.Errorf("got %+v, want TotalFiles=2 SuccessfulCount=2", summary)
	}
}

func TestServiceLiveFileProcessingFansResultsIntoSharedSink(t *testing.T) {
	svc := newTestService(t)

	uploads := make(chan domain.FileUploadRequest, 2)
	uploads <- domain.FileUploadRequest{
		File:       domain.NewFile("f1", "a.pdf", []byte("%PDF-1.4"), "pdf", 8),
		Operations: []domain.OperationKind{domain.OpValidate},
	}
	uploads <- domain.FileUploadRequest{
		File:       domain.NewFile("f2", "b.pdf", []byte("%PDF-1.4"), "pdf", 8),
		Operations: []domain.OperationKind{domain.OpValidate},
	}
	close(uploads)

	var count int
	err := svc.LiveFileProcessing(context.Background(), uploads, func(domain.OperationResult) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("LiveFileProcessing failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
