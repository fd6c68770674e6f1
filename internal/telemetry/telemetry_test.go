package telemetry

import (
	"context"
	"testing"
)

func TestInitTelemetry(t *testing.T) {
	// Test with empty endpoint (should not fail, just no telemetry)
	shutdown, err := InitTelemetry(context.Background(), "test-service", "v1.0.0", "test", "", nil)
	if err != nil {
		t.Fatalf("InitTelemetry failed: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected a shutdown func even without an endpoint")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("no-op shutdown returned %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		endpoint  string
		host      string
		insecure  bool
		tracePath string
		logPath   string
	}{
		{"localhost:4318", "localhost:4318", false, "/v1/traces", "/"},
		{"http://localhost:4318", "localhost:4318", true, "/v1/traces", "/"},
		{"https://otlp.example.com/otlp", "otlp.example.com", false, "/otlp/v1/traces", "/otlp/v1/logs"},
		{"https://collector.example.com/base/v1/traces", "collector.example.com", false, "/base/v1/traces", "/base/v1/logs"},
		{"https://collector.example.com/base/", "collector.example.com", false, "/base/v1/traces", "/base/v1/logs"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			got := parseEndpoint(tt.endpoint)
			if got.host != tt.host {
				t.Errorf("host = %q, want %q", got.host, tt.host)
			}
			if got.insecure != tt.insecure {
				t.Errorf("insecure = %v, want %v", got.insecure, tt.insecure)
			}
			if got.tracePath != tt.tracePath {
				t.Errorf("tracePath = %q, want %q", got.tracePath, tt.tracePath)
			}
			if got.logPath != tt.logPath {
				t.Errorf("logPath = %q, want %q", got.logPath, tt.logPath)
			}
		})
	}
}

func TestTracer(t *testing.T) {
	tracer := Tracer("test-tracer")
	if tracer == nil {
		t.Fatal("Tracer returned nil")
	}
}
