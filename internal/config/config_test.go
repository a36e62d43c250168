package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("ServerAddress() = %q, want 0.0.0.0:8080", cfg.ServerAddress())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.MaxFiles != 10 || cfg.MaxFileSize != 10*1024*1024 {
		t.Errorf("MaxFiles/MaxFileSize = %d/%d, want 10/10MB", cfg.MaxFiles, cfg.MaxFileSize)
	}
	if cfg.OCRProvider != OCRProviderNone {
		t.Errorf("OCRProvider = %q, want none", cfg.OCRProvider)
	}
	if cfg.OCRTimeout != 10*time.Second {
		t.Errorf("OCRTimeout = %v, want 10s", cfg.OCRTimeout)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("MAX_FILES", "4")
	t.Setenv("OCR_PROVIDER", " Tesseract ")
	t.Setenv("OCR_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.RequestTimeout != 5*time.Second || cfg.OCRTimeout != 2*time.Second {
		t.Errorf("timeouts = %v/%v, want 5s/2s", cfg.RequestTimeout, cfg.OCRTimeout)
	}
	if cfg.MaxFiles != 4 {
		t.Errorf("MaxFiles = %d, want 4", cfg.MaxFiles)
	}
	if cfg.OCRProvider != OCRProviderTesseract {
		t.Errorf("OCRProvider = %q, want tesseract", cfg.OCRProvider)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins = %v, want 2 origins", cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnvConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bagcheck.yaml")
	content := "port: \"7070\"\nocr_provider: rekognition\naws_region: eu-west-1\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Port != "7070" || cfg.OCRProvider != OCRProviderRekognition || cfg.AWSRegion != "eu-west-1" {
		t.Errorf("config = %+v, want values from file", cfg)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non numeric port", map[string]string{"PORT": "http"}},
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"zero max files", map[string]string{"MAX_FILES": "0"}},
		{"negative body size", map[string]string{"MAX_REQUEST_BODY_SIZE": "-1"}},
		{"unknown provider", map[string]string{"OCR_PROVIDER": "paddle"}},
		{"gemini without key", map[string]string{"OCR_PROVIDER": "gemini"}},
		{"missing config file", map[string]string{"CONFIG_FILE": "/nonexistent/bagcheck.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFromEnv(); err == nil {
				t.Error("LoadFromEnv() error = nil, want error")
			}
		})
	}
}
