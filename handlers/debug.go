package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mkarlsen/docker-meta-exporter/containers"
	"github.com/mkarlsen/docker-meta-exporter/debug"
)

// ContainerProvider provides the currently published container metadata set
// for debug inspection.
type ContainerProvider interface {
	GetAllContainers() []containers.ContainerMeta
}

// DebugMetricsHandler handles GET /debug/metrics requests to retrieve request statistics.
//
// Response format:
//
//	{
//	  "request_count": 123,
//	  "total_duration_ms": 5000,
//	  "last_updated": "2026-08-25T00:00:00Z",
//	  "endpoints": {
//	    "/metrics": {
//	      "count": 50,
//	      "total_duration_ms": 2500,
//	      "avg_duration_ms": 50,
//	      "last_access": "2026-08-25T00:00:00Z"
//	    }
//	  }
//	}
func DebugMetricsHandler(debugConfig *debug.DebugConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Check if debug mode is enabled
		if !debugConfig.IsEnabled() {
			http.Error(w, "Debug mode not enabled", http.StatusForbidden)
			return
		}

		// Only accept GET requests
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		metrics := debugConfig.GetMetrics()

		// Build response with endpoint details
		endpointDetails := make(map[string]interface{})
		for endpoint, em := range metrics.EndpointMetrics {
			avgDuration := float64(0)
			if em.Count > 0 {
				avgDuration = float64(em.TotalDuration.Milliseconds()) / float64(em.Count)
			}

			endpointDetails[endpoint] = map[string]interface{}{
				"count":             em.Count,
				"total_duration_ms": em.TotalDuration.Milliseconds(),
				"avg_duration_ms":   avgDuration,
				"last_access":       em.LastAccess,
			}
		}

		response := map[string]interface{}{
			"request_count":     metrics.RequestCount,
			"total_duration_ms": metrics.TotalDuration.Milliseconds(),
			"last_updated":      metrics.LastUpdated,
			"endpoints":         endpointDetails,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("Error encoding response: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// DebugContainersHandler handles GET /debug/containers requests to inspect
// the currently published observation set as JSON, without going through
// the Prometheus text format.
func DebugContainersHandler(debugConfig *debug.DebugConfig, provider ContainerProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !debugConfig.IsEnabled() {
			http.Error(w, "Debug mode not enabled", http.StatusForbidden)
			return
		}

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		collection := containers.ContainerMetaCollection{
			Containers: provider.GetAllContainers(),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(collection); err != nil {
			log.Printf("Error encoding response: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// RegisterDebugHandlers registers debug endpoints on the provided mux.
// If debug mode is not enabled, handlers are not registered (zero overhead).
//
// Endpoints:
//   - GET /debug/metrics - Retrieve request statistics
//   - GET /debug/containers - Inspect the published container set
func RegisterDebugHandlers(mux *http.ServeMux, debugConfig *debug.DebugConfig, provider ContainerProvider) {
	if debugConfig == nil || !debugConfig.IsEnabled() {
		// Don't register handlers if debug not enabled
		return
	}

	mux.HandleFunc("/debug/metrics", DebugMetricsHandler(debugConfig))
	mux.HandleFunc("/debug/containers", DebugContainersHandler(debugConfig, provider))

	log.Println("Debug handlers registered at /debug/metrics and /debug/containers")
}
