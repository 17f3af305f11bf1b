package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "HEATSHEET_API_KEY", "HEATSHEET_RULES", "HEATSHEET_CLUB",
		"WORKER_COUNT", "MAX_QUEUE_SIZE", "MAX_UPLOAD_BYTES", "JOB_TTL", "PDF_FALLBACK_PDFTOTEXT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 {
		t.Errorf("unexpected pool defaults: %d/%d", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %s", cfg.JobTTL)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback on by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HEATSHEET_CLUB", "SV Musterstadt")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("JOB_TTL", "5m")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg := Load()
	if cfg.Port != "9000" || cfg.DefaultClub != "SV Musterstadt" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.WorkerCount != 2 || cfg.MaxUploadBytes != 1024 || cfg.JobTTL != 5*time.Minute {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback off")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("MAX_QUEUE_SIZE", "lots")
	t.Setenv("JOB_TTL", "forever")

	cfg := Load()
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 || cfg.JobTTL != time.Hour {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("expected missing API key to fail")
	}
	if err := (Config{APIKey: "k"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	missing := filepath.Join(t.TempDir(), "rules.yaml")
	if err := (Config{APIKey: "k", RulesPath: missing}).Validate(); err == nil {
		t.Error("expected missing rules file to fail")
	}
}
