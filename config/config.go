// Package config provides configuration loading for docker-meta-exporter.
// It supports loading from properties/INI files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Config holds all configuration options for docker-meta-exporter.
type Config struct {
	Port         string
	DataDir      string
	DebugEnabled bool

	// Container refresh
	RefreshInterval time.Duration
	DockerTimeout   time.Duration

	// Metric families
	MetricsContainerMetaEnabled bool
	MetricsExporterInfoEnabled  bool

	// OpenTelemetry push export
	OTELMetricsEnabled      bool
	OTELMetricsEndpoint     string
	OTELMetricsProtocol     string
	OTELMetricsPushInterval time.Duration
	OTELMetricsInsecure     bool
}

// defaultConfig returns a Config with hardcoded defaults.
func defaultConfig() *Config {
	return &Config{
		Port:         "8000",
		DataDir:      "/var/lib/docker-meta-exporter",
		DebugEnabled: false,

		// Refresh every 15 seconds
		RefreshInterval: 15 * time.Second,
		DockerTimeout:   30 * time.Second,

		MetricsContainerMetaEnabled: true,
		MetricsExporterInfoEnabled:  true,

		OTELMetricsEnabled:      false,
		OTELMetricsEndpoint:     "localhost:4317",
		OTELMetricsProtocol:     "grpc",
		OTELMetricsPushInterval: 60 * time.Second,
		OTELMetricsInsecure:     false,
	}
}

// parseBool interprets common true/false spellings used in config files.
func parseBool(value string) bool {
	v := strings.ToLower(value)
	return v == "true" || v == "1" || v == "yes"
}

// parseDuration parses a duration value, accepting plain seconds as well
// as Go duration strings ("15s", "1m30s").
func parseDuration(value string) (time.Duration, error) {
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(value)
}

// LoadConfig loads configuration from the specified file path.
// Environment variables override file values.
// Precedence: environment variables > config file > defaults
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	// Try to load config file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			iniFile, err := ini.Load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}

			section := iniFile.Section("")

			if section.HasKey("port") {
				cfg.Port = section.Key("port").String()
			}

			if section.HasKey("data_dir") {
				cfg.DataDir = section.Key("data_dir").String()
			}

			if section.HasKey("debug_enabled") {
				cfg.DebugEnabled = parseBool(section.Key("debug_enabled").String())
			}

			if section.HasKey("refresh_interval") {
				d, err := parseDuration(section.Key("refresh_interval").String())
				if err != nil {
					return nil, fmt.Errorf("invalid refresh_interval in %s: %w", path, err)
				}
				cfg.RefreshInterval = d
			}

			if section.HasKey("docker_timeout") {
				d, err := parseDuration(section.Key("docker_timeout").String())
				if err != nil {
					return nil, fmt.Errorf("invalid docker_timeout in %s: %w", path, err)
				}
				cfg.DockerTimeout = d
			}

			if section.HasKey("metrics_container_meta_enabled") {
				cfg.MetricsContainerMetaEnabled = parseBool(section.Key("metrics_container_meta_enabled").String())
			}

			if section.HasKey("metrics_exporter_info_enabled") {
				cfg.MetricsExporterInfoEnabled = parseBool(section.Key("metrics_exporter_info_enabled").String())
			}

			if section.HasKey("otel_metrics_enabled") {
				cfg.OTELMetricsEnabled = parseBool(section.Key("otel_metrics_enabled").String())
			}

			if section.HasKey("otel_metrics_endpoint") {
				cfg.OTELMetricsEndpoint = section.Key("otel_metrics_endpoint").String()
			}

			if section.HasKey("otel_metrics_protocol") {
				cfg.OTELMetricsProtocol = section.Key("otel_metrics_protocol").String()
			}

			if section.HasKey("otel_metrics_push_interval") {
				d, err := parseDuration(section.Key("otel_metrics_push_interval").String())
				if err != nil {
					return nil, fmt.Errorf("invalid otel_metrics_push_interval in %s: %w", path, err)
				}
				cfg.OTELMetricsPushInterval = d
			}

			if section.HasKey("otel_metrics_insecure") {
				cfg.OTELMetricsInsecure = parseBool(section.Key("otel_metrics_insecure").String())
			}
		} else if !os.IsNotExist(err) {
			// File exists but can't be read
			return nil, fmt.Errorf("cannot access config file %s: %w", path, err)
		}
		// If file doesn't exist, just use defaults (no error)
	}

	// Override with environment variables
	if portEnv := os.Getenv("PORT"); portEnv != "" {
		cfg.Port = portEnv
	}

	if dataDirEnv := os.Getenv("DATA_DIR"); dataDirEnv != "" {
		cfg.DataDir = dataDirEnv
	}

	if debugEnv := os.Getenv("DEBUG_ENABLED"); debugEnv != "" {
		cfg.DebugEnabled = parseBool(debugEnv)
	}

	if intervalEnv := os.Getenv("REFRESH_INTERVAL"); intervalEnv != "" {
		d, err := parseDuration(intervalEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
		}
		cfg.RefreshInterval = d
	}

	if timeoutEnv := os.Getenv("DOCKER_TIMEOUT"); timeoutEnv != "" {
		d, err := parseDuration(timeoutEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid DOCKER_TIMEOUT: %w", err)
		}
		cfg.DockerTimeout = d
	}

	if otelEnv := os.Getenv("OTEL_METRICS_ENABLED"); otelEnv != "" {
		cfg.OTELMetricsEnabled = parseBool(otelEnv)
	}

	if endpointEnv := os.Getenv("OTEL_METRICS_ENDPOINT"); endpointEnv != "" {
		cfg.OTELMetricsEndpoint = endpointEnv
	}

	if protocolEnv := os.Getenv("OTEL_METRICS_PROTOCOL"); protocolEnv != "" {
		cfg.OTELMetricsProtocol = protocolEnv
	}

	if pushIntervalEnv := os.Getenv("OTEL_METRICS_PUSH_INTERVAL"); pushIntervalEnv != "" {
		d, err := parseDuration(pushIntervalEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid OTEL_METRICS_PUSH_INTERVAL: %w", err)
		}
		cfg.OTELMetricsPushInterval = d
	}

	if insecureEnv := os.Getenv("OTEL_METRICS_INSECURE"); insecureEnv != "" {
		cfg.OTELMetricsInsecure = parseBool(insecureEnv)
	}

	if containerMetaEnv := os.Getenv("METRICS_CONTAINER_META_ENABLED"); containerMetaEnv != "" {
		cfg.MetricsContainerMetaEnabled = parseBool(containerMetaEnv)
	}

	if exporterInfoEnv := os.Getenv("METRICS_EXPORTER_INFO_ENABLED"); exporterInfoEnv != "" {
		cfg.MetricsExporterInfoEnabled = parseBool(exporterInfoEnv)
	}

	return cfg, nil
}

// LoadConfigWithDefaults tries to load configuration from default locations.
// It checks locations in order:
// 1. /etc/docker-meta-exporter/exporter.conf
// 2. ./exporter.conf (current directory)
// 3. Hardcoded defaults
//
// Environment variables override file values.
func LoadConfigWithDefaults() (*Config, error) {
	defaultPaths := []string{
		"/etc/docker-meta-exporter/exporter.conf",
		"./exporter.conf",
	}

	for _, path := range defaultPaths {
		if _, err := os.Stat(path); err == nil {
			// File exists, try to load it
			cfg, err := LoadConfig(path)
			if err != nil {
				// File exists but failed to parse - return error
				return nil, err
			}
			return cfg, nil
		}
	}

	// No config file found, use defaults with env var overrides
	return LoadConfig("")
}
