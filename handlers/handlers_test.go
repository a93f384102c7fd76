package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type mockInfoProvider struct {
	info interface{}
}

func (m *mockInfoProvider) GetInfo() interface{} {
	return m.info
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	HealthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	if strings.TrimSpace(rec.Body.String()) != "OK" {
		t.Errorf("Expected body OK, got %q", rec.Body.String())
	}
}

func TestInfoHandler(t *testing.T) {
	provider := &mockInfoProvider{
		info: map[string]string{
			"component": "docker-meta-exporter",
			"version":   "1.0.0",
		},
	}

	handler := InfoHandler(provider)
	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}

	var decoded map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&decoded); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if decoded["component"] != "docker-meta-exporter" {
		t.Errorf("Unexpected component: %s", decoded["component"])
	}
	if decoded["version"] != "1.0.0" {
		t.Errorf("Unexpected version: %s", decoded["version"])
	}
}

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux, &mockInfoProvider{info: map[string]string{"component": "test"}})

	server := httptest.NewServer(mux)
	defer server.Close()

	for _, path := range []string{"/health", "/info"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("Request to %s failed: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected 200 from %s, got %d (body: %s)", path, resp.StatusCode, body)
		}
	}
}
