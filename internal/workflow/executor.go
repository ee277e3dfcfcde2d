package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/docflex/gRPC-File-Processor/internal/fileops"
	"github.com/docflex/gRPC-File-Processor/internal/metrics"
	"github.com/docflex/gRPC-File-Processor/internal/workerpool"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

var tracer = otel.Tracer("fileproc/workflow")

// Executor turns a domain.Request into Tasks, drives them through a
// workerpool.Pool, and delivers results in batch or streaming form (spec
// §4.4). It holds no per-call state — a single Executor is shared across
// every request the process handles.
type Executor struct {
	pool    *workerpool.Pool
	ops     *fileops.Library
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewExecutor builds an Executor over the given pool, operations library,
// and metrics registry.
func NewExecutor(pool *workerpool.Pool, ops *fileops.Library, reg *metrics.Registry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{pool: pool, ops: ops, metrics: reg, logger: logger}
}

// ProcessWorkflow runs req in batch mode: it blocks until every task is
// done and folds results in submission order into a domain.Summary.
func (e *Executor) ProcessWorkflow(ctx context.Context, req domain.Request) (domain.Summary, error) {
	tasks := expand(req)
	wf := newWorkflow("", tasks)

	ctx, span := tracer.Start(ctx, "workflow.process", oteltrace.WithAttributes(
		attribute.String("workflow.id", wf.ID),
		attribute.Int("workflow.task_count", len(tasks)),
	))
	defer span.End()

	if len(tasks) == 0 {
		summary, _ := domain.NewSummary(len(req.Files()), 0, 0, nil)
		return summary, nil
	}

	for _, t := range tasks {
		e.submit(ctx, wf.ID, t)
	}

	results := make([]domain.OperationResult, len(tasks))
	for i, t := range tasks {
		results[i] = t.Result()
	}

	summary, err := domain.SummaryFromResults(len(req.Files()), results)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.Summary{}, fmt.Errorf("fold workflow results: %w", err)
	}
	return summary, nil
}

// StreamHandle completes once every task in a streamed workflow has been
// delivered to the sink, whether its underlying task succeeded or failed.
type StreamHandle struct {
	done chan struct{}
}

// Wait blocks until every task has been delivered.
func (h *StreamHandle) Wait() { <-h.done }

// ProcessWorkflowStreamed runs req in stream mode: results are pushed into
// sink in completion order (not submission order) under a per-workflow
// serializing lock, so sink never sees concurrent calls. A sink error is
// logged but never aborts the other tasks.
func (e *Executor) ProcessWorkflowStreamed(ctx context.Context, req domain.Request, sink func(domain.OperationResult) error) *StreamHandle {
	tasks := expand(req)
	wf := newWorkflow("", tasks)

	ctx, span := tracer.Start(ctx, "workflow.process_streamed", oteltrace.WithAttributes(
		attribute.String("workflow.id", wf.ID),
		attribute.Int("workflow.task_count", len(tasks)),
	))

	handle := &StreamHandle{done: make(chan struct{})}
	if len(tasks) == 0 {
		span.End()
		close(handle.done)
		return handle
	}

	var sinkMu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(len(tasks))

	for _, t := range tasks {
		t := t
		e.submit(ctx, wf.ID, t)
		go func() {
			defer wg.Done()
			result := t.Result()

			sinkMu.Lock()
			err := sink(result)
			sinkMu.Unlock()
			if err != nil {
				e.logger.Error("stream sink failed", "workflow", wf.ID, "fileId", result.FileID, "error", err)
			}
		}()
	}

	go func() {
		wg.Wait()
		span.End()
		close(handle.done)
	}()

	return handle
}

// submit increments activeTasks, submits a closure to the pool that
// dispatches the task's operation, measures duration, and completes the
// task exactly once — mirroring spec §4.4's submission contract.
func (e *Executor) submit(ctx context.Context, workflowID string, t *Task) {
	e.metrics.Tasks.IncActive()

	e.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				e.metrics.Tasks.DecActive()
				t.CompleteExceptionally(fmt.Errorf("panic: %v", r), e.metrics, 0)
			}
		}()

		taskCtx, span := tracer.Start(ctx, "workflow.task", oteltrace.WithAttributes(
			attribute.String("workflow.id", workflowID),
			attribute.String("task.file_id", t.File.ID()),
			attribute.String("task.operation", string(t.Operation.Kind)),
		))

		start := time.Now()
		result := e.dispatch(taskCtx, t)
		duration := time.Since(start)

		e.metrics.Tasks.DecActive()
		if result.Succeeded() {
			span.SetStatus(codes.Ok, "")
		} else {
			span.SetStatus(codes.Error, result.Details)
		}
		span.End()

		t.Complete(result, e.metrics, duration.Milliseconds())
	})
}

// dispatch maps an operation kind onto the operations library and builds
// the OperationResult spec §4.4 describes: SUCCESS with resultLocation set
// to either the returned path or "/mock/location/<fileName>", or FAILED
// with details "Error: <message>" on a dispatcher error. Unknown kinds are
// treated as a log-and-skip success.
func (e *Executor) dispatch(ctx context.Context, t *Task) domain.OperationResult {
	start := time.Now()
	f := t.File
	kind := t.Operation.Kind

	success := func(location string) domain.OperationResult {
		return domain.NewOperationResult(f.ID(), kind, domain.StatusSuccess, "Operation completed successfully", start, time.Now(), location)
	}
	failure := func(err error) domain.OperationResult {
		return domain.NewOperationResult(f.ID(), kind, domain.StatusFailed, "Error: "+err.Error(), start, time.Now(), "")
	}
	mockLocation := "/mock/location/" + f.Name()

	switch kind {
	case domain.OpValidate:
		if err := e.ops.Validate(f); err != nil {
			return failure(err)
		}
		return success(mockLocation)

	case domain.OpMetadataExtraction:
		_ = e.ops.ExtractMetadata(f)
		return success(mockLocation)

	case domain.OpOCRTextExtraction:
		if _, err := e.ops.PerformOCR(f); err != nil {
			return failure(err)
		}
		return success(mockLocation)

	case domain.OpImageResize:
		maxW := t.Operation.IntParam("maxW", 800)
		maxH := t.Operation.IntParam("maxH", 600)
		if _, err := e.ops.ResizeImage(f, maxW, maxH); err != nil {
			return failure(err)
		}
		return success(mockLocation)

	case domain.OpFileCompression:
		path, err := e.ops.CompressFile(f)
		if err != nil {
			return failure(err)
		}
		return success(path)

	case domain.OpFormatConversion:
		target := t.Operation.StringParam("target", "jpg")
		if _, err := e.ops.ConvertFormat(f, target); err != nil {
			return failure(err)
		}
		return success(mockLocation)

	case domain.OpStorage:
		path, err := e.ops.StoreFile(f)
		if err != nil {
			return failure(err)
		}
		return success(path)

	default:
		e.logger.Debug("unknown operation kind, treating as no-op success", "kind", kind)
		return success(mockLocation)
	}
}
