// Package metrics provides Prometheus metrics exposition for docker-meta-exporter.
package metrics

import (
	"github.com/mkarlsen/docker-meta-exporter/containers"
)

// InfoProvider provides exporter information for metrics labels
type InfoProvider interface {
	GetExporterName() string // hostname of the exporting machine
	GetVersion() string
}

// ContainerProvider provides access to the current container metadata set
type ContainerProvider interface {
	GetAllContainers() []containers.ContainerMeta
}

// CollectorConfig holds configuration for which metric families to collect
type CollectorConfig struct {
	ContainerMetaEnabled bool
	ExporterInfoEnabled  bool
}

// Collector collects metrics and formats them for Prometheus
type Collector struct {
	infoProvider InfoProvider
	exporterUUID string
	provider     ContainerProvider
	config       CollectorConfig
}

// NewCollector creates a new metrics collector
func NewCollector(infoProvider InfoProvider, exporterUUID string, provider ContainerProvider, config CollectorConfig) *Collector {
	return &Collector{
		infoProvider: infoProvider,
		exporterUUID: exporterUUID,
		provider:     provider,
		config:       config,
	}
}

// Collect generates structured metrics data
func (c *Collector) Collect() (*MetricsData, error) {
	data := &MetricsData{
		Families: make([]MetricFamily, 0),
	}

	// Collect exporter info metric if enabled
	if c.config.ExporterInfoEnabled && c.infoProvider != nil {
		data.Families = append(data.Families, c.collectExporterInfoMetric())
	}

	// Collect container metadata metrics if enabled
	if c.config.ContainerMetaEnabled && c.provider != nil {
		data.Families = append(data.Families, c.collectContainerMetaMetrics())
	}

	return data, nil
}

// collectExporterInfoMetric generates the container_exporter_info metric
func (c *Collector) collectExporterInfoMetric() MetricFamily {
	labels := map[string]string{
		"exporter_uuid": c.exporterUUID,
		"exporter_name": c.infoProvider.GetExporterName(),
		"version":       c.infoProvider.GetVersion(),
	}

	return MetricFamily{
		Name: "container_exporter_info",
		Help: "Docker meta exporter information",
		Type: "gauge",
		Metrics: []MetricPoint{
			{
				Labels: labels,
				Value:  1,
			},
		},
	}
}

// collectContainerMetaMetrics generates container_meta_info metrics for
// every container currently held by the provider. The value is fixed at 1;
// the label tuple itself is the information.
func (c *Collector) collectContainerMetaMetrics() MetricFamily {
	metas := c.provider.GetAllContainers()

	points := make([]MetricPoint, 0, len(metas))
	for _, meta := range metas {
		points = append(points, MetricPoint{
			Labels: map[string]string{
				"id":                         meta.ShortID,
				"name":                       meta.Name,
				"image":                      meta.Image,
				"com_docker_compose_service": meta.Service,
				"state":                      meta.State,
				"full_id":                    meta.FullID,
			},
			Value: 1,
		})
	}

	return MetricFamily{
		Name:    "container_meta_info",
		Help:    "Container metadata info",
		Type:    "gauge",
		Metrics: points,
	}
}
