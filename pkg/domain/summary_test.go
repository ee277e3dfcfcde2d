package domain

import "testing"

func TestNewSummaryRejectsNegativeCounts(t *testing.T) {
	_, err := NewSummary(-1, 0, 0, nil)
	if err != ErrNegativeCount {
		t.Fatalf("expected ErrNegativeCount, got %v", err)
	}
}

func TestSummaryFromResultsCountsOutcomesNotFiles(t *testing.T) {
	results := []OperationResult{
		NewOperationResult("a", OpValidate, StatusSuccess, "ok", zeroTime, zeroTime, ""),
		NewOperationResult("a", OpMetadataExtraction, StatusSuccess, "ok", zeroTime, zeroTime, ""),
		NewOperationResult("b", OpValidate, StatusSuccess, "ok", zeroTime, zeroTime, ""),
		NewOperationResult("b", OpMetadataExtraction, StatusSuccess, "ok", zeroTime, zeroTime, ""),
	}

	summary, err := SummaryFromResults(2, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", summary.TotalFiles)
	}
	if summary.SuccessfulCount != 4 {
		t.Errorf("SuccessfulCount = %d, want 4 (sum-of-outcomes, not files)", summary.SuccessfulCount)
	}
	if summary.FailedCount != 0 {
		t.Errorf("FailedCount = %d, want 0", summary.FailedCount)
	}
	if len(summary.Results()) != 4 {
		t.Errorf("len(Results()) = %d, want 4", len(summary.Results()))
	}
}

func TestSummaryResultsIsDefensiveCopy(t *testing.T) {
	results := []OperationResult{NewOperationResult("a", OpValidate, StatusSuccess, "ok", zeroTime, zeroTime, "")}
	summary, err := SummaryFromResults(1, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := summary.Results()
	got[0].Details = "mutated"

	if again := summary.Results(); again[0].Details != "ok" {
		t.Errorf("mutating returned results leaked into Summary: got %q", again[0].Details)
	}
}
