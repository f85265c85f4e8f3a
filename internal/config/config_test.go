package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.RequestTimeout.Std() != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout.Std())
	}
	if cfg.MaxIdleConns != 100 {
		t.Errorf("MaxIdleConns = %d, want 100", cfg.MaxIdleConns)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s3kit.yaml")
	doc := `endpoint: https://minio.internal:9000
request_timeout: 5s
max_idle_conns: 16
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Endpoint != "https://minio.internal:9000" {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.RequestTimeout.Std() != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout.Std())
	}
	// Unset fields keep their defaults.
	if cfg.ConnectTimeout.Std() != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want default 10s", cfg.ConnectTimeout.Std())
	}
	if cfg.MaxIdleConns != 16 {
		t.Errorf("MaxIdleConns = %d, want 16", cfg.MaxIdleConns)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s3kit.yaml")
	if err := os.WriteFile(path, []byte("request_timeout: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestValidateRejectsNegatives(t *testing.T) {
	cfg := Default()
	cfg.RequestTimeout = Duration(-time.Second)
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative timeout")
	}
}
