package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkarlsen/docker-meta-exporter/containers"
)

func newTestCollector() *Collector {
	provider := &mockContainerProvider{
		metas: []containers.ContainerMeta{
			{
				FullID:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				ShortID: "aaaaaaaaaaaa",
				Name:    "web",
				Image:   "nginx:1.21",
				Service: "web",
				State:   "running",
			},
		},
	}
	return NewCollector(nil, "", provider, CollectorConfig{ContainerMetaEnabled: true})
}

func TestHandlerReturnsMetrics(t *testing.T) {
	handler := Handler(newTestCollector())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	resp := rec.Result()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "text/plain; version=0.0.4; charset=utf-8" {
		t.Errorf("Unexpected content type: %s", contentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	output := string(body)
	if !strings.Contains(output, "container_meta_info{") {
		t.Errorf("Expected container_meta_info metric in output:\n%s", output)
	}
	if !strings.Contains(output, `name="web"`) {
		t.Errorf("Expected name label in output:\n%s", output)
	}
}

func TestHandlerRejectsNonGet(t *testing.T) {
	handler := Handler(newTestCollector())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/metrics", nil)
		rec := httptest.NewRecorder()

		handler(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405 for %s, got %d", method, rec.Code)
		}
	}
}

func TestRegisterMetricsHandler(t *testing.T) {
	mux := http.NewServeMux()
	RegisterMetricsHandler(mux, newTestCollector())

	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}
