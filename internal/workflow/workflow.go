package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

// Workflow is one request's worth of submitted tasks, built and driven by
// an Executor. ID is generated when absent, matching spec §3's "generated
// if absent" for workflow identifiers.
type Workflow struct {
	ID          string
	Tasks       []*Task
	SubmittedAt time.Time
}

func newWorkflow(id string, tasks []*Task) *Workflow {
	if id == "" {
		id = uuid.NewString()
	}
	return &Workflow{ID: id, Tasks: tasks, SubmittedAt: time.Now()}
}

// defaultParametersFor returns the default operation parameters spec §4.4
// names: IMAGE_RESIZE gets maxW=800/maxH=600, FORMAT_CONVERSION gets
// target="jpg", everything else gets none.
func defaultParametersFor(kind domain.OperationKind) map[string]any {
	switch kind {
	case domain.OpImageResize:
		return map[string]any{"maxW": 800, "maxH": 600}
	case domain.OpFormatConversion:
		return map[string]any{"target": "jpg"}
	default:
		return nil
	}
}

// expand turns a Request into an ordered list of Tasks: file order ×
// per-file operation order, per spec §4.4's task-expansion rule. A file
// whose operation list is empty contributes zero tasks.
func expand(req domain.Request) []*Task {
	var tasks []*Task
	for _, f := range req.Files() {
		for _, kind := range req.OperationsFor(f.ID()) {
			op := domain.NewOperation(kind, defaultParametersFor(kind))
			tasks = append(tasks, NewTask(f, op))
		}
	}
	return tasks
}
