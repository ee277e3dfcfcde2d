// Package workflow expands a domain.Request into domain.Task executions,
// drives them through a workerpool.Pool, and folds results into a batch
// domain.Summary or delivers them to a streaming sink.
package workflow

import (
	"sync/atomic"
	"time"

	"github.com/docflex/gRPC-File-Processor/internal/metrics"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// Task is one (file, operation) unit of work: a single-completion result
// handle any number of goroutines may race to complete, where exactly one
// wins. Mirrors spec §4.2 — complete/completeExceptionally are idempotent
// no-ops after the first call, resolved by whichever acquires the set-once
// flag first.
type Task struct {
	File      domain.File
	Operation domain.Operation

	done   atomic.Bool
	result chan domain.OperationResult
}

// NewTask builds a Task for file/op. Callers are expected to have already
// validated that file and op are non-zero values — Go's value types can't
// be nil the way spec §4.2 guards against a null file or operation, so the
// contract here is simply "always pass a real File and Operation".
func NewTask(file domain.File, op domain.Operation) *Task {
	return &Task{
		File:      file,
		Operation: op,
		result:    make(chan domain.OperationResult, 1),
	}
}

// IsDone reflects the completed flag.
func (t *Task) IsDone() bool { return t.done.Load() }

// Result blocks until the task completes and returns its result.
func (t *Task) Result() domain.OperationResult {
	r := <-t.result
	t.result <- r // allow repeated reads; completion only ever happens once
	return r
}

// Complete records a successful or failed result on the first call,
// updates reg's task counters, and marks the task done. Subsequent calls
// are silent no-ops — exactly one of Complete/CompleteExceptionally's
// metrics effect fires per task, whichever wins the CAS race.
func (t *Task) Complete(result domain.OperationResult, reg *metrics.Registry, durationMillis int64) {
	if !t.done.CompareAndSwap(false, true) {
		return
	}
	if result.Succeeded() {
		reg.Tasks.RecordCompletion(durationMillis)
	} else {
		reg.Tasks.RecordFailure(durationMillis)
	}
	t.result <- result
}

// CompleteExceptionally marks the task failed with cause on the first
// call. It is the panic-recovery counterpart to Complete — Go has no
// checked exceptions, so this is invoked from a recover() in the pool
// worker's closure rather than from an explicit catch(Throwable).
func (t *Task) CompleteExceptionally(cause error, reg *metrics.Registry, durationMillis int64) {
	if !t.done.CompareAndSwap(false, true) {
		return
	}
	reg.Tasks.RecordFailure(durationMillis)
	now := time.Now()
	t.result <- domain.NewOperationResult(t.File.ID(), t.Operation.Kind, domain.StatusFailed, "Error: "+cause.Error(), now, now, "")
}
