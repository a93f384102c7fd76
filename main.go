package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/mkarlsen/docker-meta-exporter/config"
	"github.com/mkarlsen/docker-meta-exporter/containers"
	"github.com/mkarlsen/docker-meta-exporter/debug"
	"github.com/mkarlsen/docker-meta-exporter/docker"
	"github.com/mkarlsen/docker-meta-exporter/exporterid"
	"github.com/mkarlsen/docker-meta-exporter/handlers"
	"github.com/mkarlsen/docker-meta-exporter/jobs"
	"github.com/mkarlsen/docker-meta-exporter/metrics"
	"github.com/mkarlsen/docker-meta-exporter/scheduler"
)

// version is set at build time via ldflags
var version = "dev"

type InfoResponse struct {
	Component string `json:"component"`
	Version   string `json:"version"`
	Hostname  string `json:"hostname"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// ExporterInfo provides exporter identity for the /info endpoint and
// metrics labels.
type ExporterInfo struct{}

func (e *ExporterInfo) GetInfo() interface{} {
	hostname, _ := os.Hostname()

	return InfoResponse{
		Component: "docker-meta-exporter",
		Version:   version,
		Hostname:  hostname,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func (e *ExporterInfo) GetExporterName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "localhost"
	}
	return hostname
}

func (e *ExporterInfo) GetVersion() string {
	return version
}

// setupLogging configures logging to write to both stdout and a log file
func setupLogging() (*os.File, error) {
	logDir := "/var/log/docker-meta-exporter"
	logFile := filepath.Join(logDir, "exporter.log")

	// Try to open the log file, but don't fail if we can't
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Warning: could not open log file %s: %v (logging to stdout only)", logFile, err)
		return nil, nil
	}

	// Log to both stdout (systemd journal) and file
	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags)

	return file, nil
}

func main() {
	logFile, _ := setupLogging()
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	// Load configuration from file with environment variable overrides
	cfg, err := config.LoadConfigWithDefaults()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugConfig := debug.NewDebugConfig(cfg.DebugEnabled)
	if debugConfig.IsEnabled() {
		log.Println("Debug mode ENABLED - verbose request logging active")
	}

	log.Printf("docker-meta-exporter v%s starting", version)
	log.Printf("Configuration: port=%s, refresh_interval=%v, debug=%v",
		cfg.Port, cfg.RefreshInterval, cfg.DebugEnabled)

	// Initialize exporter UUID
	exporterUUID, err := exporterid.NewUUID(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize exporter UUID: %v", err)
	}
	log.Printf("Exporter UUID: %s", exporterUUID)

	// Create container metadata manager
	manager := containers.NewManager()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := docker.NewCollector(cfg.DockerTimeout)
	refreshJob := jobs.NewRefreshContainersJob(collector, manager)

	if docker.IsDockerAvailable() {
		log.Println("Docker detected, performing initial container refresh")
		if err := refreshJob.Run(ctx); err != nil {
			log.Printf("Warning: initial container refresh failed: %v", err)
		}
	} else {
		log.Println("Docker not available or not accessible, metrics will be empty until it comes up")
	}

	// Initialize scheduler for the periodic refresh
	sched := scheduler.New()
	if err := sched.AddJob(
		refreshJob,
		scheduler.NewIntervalSchedule(cfg.RefreshInterval),
		scheduler.JobConfig{
			Enabled: true,
			Timeout: cfg.DockerTimeout,
		},
	); err != nil {
		log.Fatalf("Failed to add refresh job: %v", err)
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	log.Printf("Scheduled refresh-containers job (interval: %v)", cfg.RefreshInterval)

	// Setup HTTP server
	infoProvider := &ExporterInfo{}

	mux := http.NewServeMux()
	handlers.RegisterHandlers(mux, infoProvider)

	// Register Prometheus metrics endpoint
	collectorConfig := metrics.CollectorConfig{
		ContainerMetaEnabled: cfg.MetricsContainerMetaEnabled,
		ExporterInfoEnabled:  cfg.MetricsExporterInfoEnabled,
	}
	metricsCollector := metrics.NewCollector(infoProvider, exporterUUID.String(), manager, collectorConfig)
	metrics.RegisterMetricsHandler(mux, metricsCollector)

	// Debug inspection endpoints (only registered when debug is enabled)
	handlers.RegisterDebugHandlers(mux, debugConfig, manager)

	// Initialize OpenTelemetry metrics exporter if enabled
	var otelExporter *metrics.OTELExporter
	if cfg.OTELMetricsEnabled {
		log.Printf("Initializing OpenTelemetry metrics exporter (endpoint: %s, protocol: %s, interval: %v)",
			cfg.OTELMetricsEndpoint, cfg.OTELMetricsProtocol, cfg.OTELMetricsPushInterval)

		otelConfig := metrics.OTELConfig{
			Endpoint:     cfg.OTELMetricsEndpoint,
			Protocol:     metrics.OTELProtocol(cfg.OTELMetricsProtocol),
			PushInterval: cfg.OTELMetricsPushInterval,
			Insecure:     cfg.OTELMetricsInsecure,
		}

		otelExporter, err = metrics.NewOTELExporter(ctx, metricsCollector, otelConfig)
		if err != nil {
			log.Printf("Warning: Failed to initialize OTEL exporter: %v (continuing without OTEL)", err)
		} else {
			otelExporter.Start()
			log.Println("OpenTelemetry metrics exporter started")
		}
	}

	// Wrap with logging middleware if debug enabled
	var handler http.Handler = mux
	if debugConfig.IsEnabled() {
		handler = debug.LoggingMiddleware(debugConfig, mux)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Handle shutdown gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("docker-meta-exporter listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutdown signal received, shutting down gracefully...")

	// Cancel context and stop the refresh scheduler
	cancel()
	if err := sched.Stop(); err != nil {
		log.Printf("Error stopping scheduler: %v", err)
	}

	// Shutdown OTEL exporter if running
	if otelExporter != nil {
		log.Println("Shutting down OpenTelemetry exporter...")
		if err := otelExporter.Shutdown(); err != nil {
			log.Printf("Error shutting down OTEL exporter: %v", err)
		}
	}

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("docker-meta-exporter stopped")
}
