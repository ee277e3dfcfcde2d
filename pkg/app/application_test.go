package app

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/docflex/gRPC-File-Processor/pkg/config"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	cfg.StorageDir = t.TempDir()
	cfg.RedisAddr = mr.Addr()
	cfg.CoreWorkers = 2
	cfg.MaxWorkers = 4
	cfg.QueueCapacity = 16

	a, err := NewApplication(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewApplication failed: %v", err)
	}
	t.Cleanup(a.Shutdown)
	SetupMappings(a)
	return a
}

func TestHTTPIntegrationProcessFile(t *testing.T) {
	a := newTestApplication(t)

	body := map[string]any{
		"files": []map[string]any{
			{
				"id":            "f1",
				"name":          "a.pdf",
				"type":          "pdf",
				"size":          8,
				"contentBase64": base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
			},
		},
		"defaultOperations": []string{"VALIDATE"},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/process", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	a.Engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestMetricsEndpointExposesPrometheusFormat(t *testing.T) {
	a := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	a.Engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("fileproc_tasks_active")) {
		t.Errorf("expected fileproc_tasks_active metric, got body: %s", rec.Body.String())
	}
}
