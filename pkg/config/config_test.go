package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigAppliesDefaultsWithNoFile(t *testing.T) {
	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Port != 8080 {
		t.Errorf("Port = %d, want 8080", c.Port)
	}
	if c.StorageDir == "" {
		t.Error("expected a default StorageDir")
	}
	if c.DedupFalsePositive <= 0 {
		t.Error("expected a default DedupFalsePositive")
	}
	if c.MaxFileSize != 100*1024*1024 {
		t.Errorf("MaxFileSize = %d, want 100 MiB", c.MaxFileSize)
	}
}

func TestLoadConfigReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "port: 9090\nstorageDir: /data/files\ncoreWorkers: 4\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Port != 9090 {
		t.Errorf("Port = %d, want 9090", c.Port)
	}
	if c.StorageDir != "/data/files" {
		t.Errorf("StorageDir = %q, want /data/files", c.StorageDir)
	}
	if c.CoreWorkers != 4 {
		t.Errorf("CoreWorkers = %d, want 4", c.CoreWorkers)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("port: 9090\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Setenv("PORT", "7070")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Port != 7070 {
		t.Errorf("Port = %d, want 7070 (env override)", c.Port)
	}
}

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", c.Port)
	}
}

func TestLoadConfigRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.yaml")
	invalid := "port: 8080\n  bad indentation\n"
	if err := os.WriteFile(path, []byte(invalid), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	c := &Config{}
	applyDefaults(c)
	c.Port = 70000
	if err := c.Validate(); err == nil {
		t.Error("expected an error for out-of-range port")
	}
}

func TestValidateRejectsCoreWorkersAboveMax(t *testing.T) {
	c := &Config{}
	applyDefaults(c)
	c.CoreWorkers = 10
	c.MaxWorkers = 4
	if err := c.Validate(); err == nil {
		t.Error("expected an error when coreWorkers exceeds maxWorkers")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	c := &Config{}
	applyDefaults(c)
	if err := c.Validate(); err != nil {
		t.Errorf("Validate failed on defaulted config: %v", err)
	}
}

func TestDurationHelpers(t *testing.T) {
	c := &Config{IdleTimeoutSeconds: 60, MonitorIntervalSecs: 1, DedupRotateHours: 24, DedupTTLHours: 48}
	if c.IdleTimeout().Seconds() != 60 {
		t.Errorf("IdleTimeout = %v, want 60s", c.IdleTimeout())
	}
	if c.MonitorInterval().Seconds() != 1 {
		t.Errorf("MonitorInterval = %v, want 1s", c.MonitorInterval())
	}
	if c.DedupRotateEvery().Hours() != 24 {
		t.Errorf("DedupRotateEvery = %v, want 24h", c.DedupRotateEvery())
	}
	if c.DedupTTL().Hours() != 48 {
		t.Errorf("DedupTTL = %v, want 48h", c.DedupTTL())
	}
}
