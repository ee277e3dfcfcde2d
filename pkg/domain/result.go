package domain

import "time"

// OperationResult is the outcome of one (file, operation) execution.
// Timestamps default to "now" when left zero-valued at construction.
type OperationResult struct {
	FileID         string
	OperationKind  OperationKind
	Status         OperationStatus
	Details        string
	StartTime      time.Time
	EndTime        time.Time
	ResultLocation string
}

// NewOperationResult fills in StartTime/EndTime with now when zero, matching
// the spec's "timestamps default to now if unset" rule.
func NewOperationResult(fileID string, kind OperationKind, status OperationStatus, details string, start, end time.Time, location string) OperationResult {
	now := time.Now()
	if start.IsZero() {
		start = now
	}
	if end.IsZero() {
		end = now
	}
	return OperationResult{
		FileID:         fileID,
		OperationKind:  kind,
		Status:         status,
		Details:        details,
		StartTime:      start,
		EndTime:        end,
		ResultLocation: location,
	}
}

// Duration is max(0, EndTime - StartTime): never negative even if a caller
// supplies out-of-order timestamps.
func (r OperationResult) Duration() time.Duration {
	d := r.EndTime.Sub(r.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Succeeded reports whether the result's status is SUCCESS.
func (r OperationResult) Succeeded() bool { return r.Status == StatusSuccess }
