package debug

import (
	"log"
	"net/http"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code and response size.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Write captures the response size.
func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// LoggingMiddleware provides verbose HTTP request/response logging and
// metrics collection when debug mode is enabled. When disabled, it passes
// through with zero overhead.
//
// Example output:
//
//	[DEBUG] Request: method=GET path=/metrics remote=127.0.0.1:54321
//	[DEBUG] Response: method=GET path=/metrics status=200 size=1234 duration=45.2ms
func LoggingMiddleware(debugConfig *DebugConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !debugConfig.IsEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		log.Printf("[DEBUG] Request: method=%s path=%s remote=%s",
			r.Method, r.URL.Path, r.RemoteAddr)

		rw := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK, // Default status if WriteHeader not called
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		log.Printf("[DEBUG] Response: method=%s path=%s status=%d size=%d duration=%v",
			r.Method, r.URL.Path, rw.status, rw.size, duration)

		debugConfig.RecordRequest(r.URL.Path, duration)
	})
}
