package metrics

import (
	"log"
	"net/http"
)

// Handler returns an HTTP handler for the /metrics endpoint
func Handler(collector *Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Only accept GET requests
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Collect metrics
		data, err := collector.Collect()
		if err != nil {
			log.Printf("Error collecting metrics: %v", err)
			http.Error(w, "Failed to collect metrics", http.StatusInternalServerError)
			return
		}

		// Write response
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(FormatPrometheus(data))); err != nil {
			log.Printf("Error writing metrics response: %v", err)
		}
	}
}

// RegisterMetricsHandler registers the /metrics endpoint on the provided mux
func RegisterMetricsHandler(mux *http.ServeMux, collector *Collector) {
	mux.HandleFunc("/metrics", Handler(collector))
	log.Println("Metrics handler registered at /metrics")
}
