package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bagcheck/authenticity-api/internal/config"

	"github.com/gin-gonic/gin"
)

func testConfig(provider string) *config.Config {
	return &config.Config{
		Host:               "127.0.0.1",
		Port:               "8080",
		RequestTimeout:     5 * time.Second,
		MaxRequestBodySize: 1024 * 1024,
		MaxFiles:           10,
		MaxFileSize:        1024 * 1024,
		OCRProvider:        provider,
		OCRTimeout:         time.Second,
	}
}

func TestNewContainer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, err := NewContainer(context.Background(), testConfig(config.OCRProviderNone))
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()

	if c.Config().Port != "8080" {
		t.Errorf("Config().Port = %q, want 8080", c.Config().Port)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	c.Handler().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", resp.Code)
	}
	if c.Metrics() == nil {
		t.Error("Metrics() = nil")
	}
}

func TestNewContainerUnknownProvider(t *testing.T) {
	if _, err := NewContainer(context.Background(), testConfig("paddle")); err == nil {
		t.Error("NewContainer() error = nil, want error for unknown provider")
	}
}
