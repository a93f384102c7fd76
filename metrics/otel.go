package metrics

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// OTELProtocol selects the OTLP transport
type OTELProtocol string

const (
	OTELProtocolGRPC OTELProtocol = "grpc"
	OTELProtocolHTTP OTELProtocol = "http"
)

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	Endpoint     string
	Protocol     OTELProtocol
	PushInterval time.Duration
	Insecure     bool
}

// OTELExporter exports metrics to an OpenTelemetry collector. It pushes
// the same observation set that the /metrics endpoint serves.
type OTELExporter struct {
	collector     *Collector
	config        OTELConfig
	meterProvider *sdkmetric.MeterProvider
	gauges        map[string]metric.Int64Gauge
	ctx           context.Context
	cancel        context.CancelFunc
}

// newOTLPExporter creates the protocol-specific OTLP metric exporter
func newOTLPExporter(ctx context.Context, config OTELConfig) (sdkmetric.Exporter, error) {
	switch config.Protocol {
	case OTELProtocolHTTP:
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(config.Endpoint),
		}
		if config.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)

	case OTELProtocolGRPC, "":
		opts := []otlpmetricgrpc.Option{
			otlpmetricgrpc.WithEndpoint(config.Endpoint),
		}
		if config.Insecure {
			opts = append(opts, otlpmetricgrpc.WithTLSCredentials(insecure.NewCredentials()))
			opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		}
		return otlpmetricgrpc.New(ctx, opts...)

	default:
		return nil, fmt.Errorf("unsupported OTEL protocol: %s", config.Protocol)
	}
}

// NewOTELExporter creates a new OTEL metrics exporter
func NewOTELExporter(ctx context.Context, collector *Collector, config OTELConfig) (*OTELExporter, error) {
	exporter, err := newOTLPExporter(ctx, config)
	if err != nil {
		return nil, err
	}

	// Create resource with service information
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("docker-meta-exporter"),
			semconv.ServiceVersionKey.String(collector.infoProvider.GetVersion()),
			attribute.String("exporter.name", collector.infoProvider.GetExporterName()),
			attribute.String("exporter.uuid", collector.exporterUUID),
		),
	)
	if err != nil {
		return nil, err
	}

	// Create meter provider with periodic reader
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(config.PushInterval))),
	)

	// Set global meter provider
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter("docker-meta-exporter")

	containerGauge, err := meter.Int64Gauge("container_meta_info",
		metric.WithDescription("Container metadata info"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	exporterGauge, err := meter.Int64Gauge("container_exporter_info",
		metric.WithDescription("Docker meta exporter information"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	exporterCtx, cancel := context.WithCancel(ctx)

	return &OTELExporter{
		collector:     collector,
		config:        config,
		meterProvider: meterProvider,
		gauges: map[string]metric.Int64Gauge{
			"container_meta_info":     containerGauge,
			"container_exporter_info": exporterGauge,
		},
		ctx:    exporterCtx,
		cancel: cancel,
	}, nil
}

// Start begins pushing metrics to the OTEL collector
func (e *OTELExporter) Start() {
	go e.pushMetrics()
}

// pushMetrics periodically collects and records metrics
func (e *OTELExporter) pushMetrics() {
	// Record immediately on start
	e.recordMetrics()

	ticker := time.NewTicker(e.config.PushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.recordMetrics()
		case <-e.ctx.Done():
			return
		}
	}
}

// recordMetrics records the current observation set on the OTEL gauges.
// The same collector feeds the /metrics endpoint, which keeps the two
// export paths consistent.
func (e *OTELExporter) recordMetrics() {
	data, err := e.collector.Collect()
	if err != nil {
		log.Printf("[otel] Error collecting metrics: %v", err)
		return
	}

	for _, family := range data.Families {
		gauge, ok := e.gauges[family.Name]
		if !ok {
			continue
		}
		for _, point := range family.Metrics {
			attrs := make([]attribute.KeyValue, 0, len(point.Labels))
			for k, v := range point.Labels {
				attrs = append(attrs, attribute.String(k, v))
			}
			gauge.Record(e.ctx, int64(point.Value), metric.WithAttributes(attrs...))
		}
	}
}

// Shutdown gracefully shuts down the OTEL exporter
func (e *OTELExporter) Shutdown() error {
	e.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.meterProvider.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down OTEL meter provider: %v", err)
		return err
	}

	return nil
}
