package metrics

import (
	"strings"
	"testing"

	"github.com/mkarlsen/docker-meta-exporter/containers"
)

type mockInfoProvider struct {
	name    string
	version string
}

func (m *mockInfoProvider) GetExporterName() string { return m.name }
func (m *mockInfoProvider) GetVersion() string      { return m.version }

type mockContainerProvider struct {
	metas []containers.ContainerMeta
}

func (m *mockContainerProvider) GetAllContainers() []containers.ContainerMeta {
	return m.metas
}

func testContainers() []containers.ContainerMeta {
	return []containers.ContainerMeta{
		{
			FullID:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			ShortID: "aaaaaaaaaaaa",
			Name:    "web",
			Image:   "nginx:1.21",
			Service: "web",
			State:   "running",
		},
		{
			FullID:  "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			ShortID: "bbbbbbbbbbbb",
			Name:    "db",
			Image:   "postgres:16",
			Service: "db",
			State:   "exited",
		},
	}
}

func TestCollectContainerMetaMetrics(t *testing.T) {
	provider := &mockContainerProvider{metas: testContainers()}
	collector := NewCollector(nil, "", provider, CollectorConfig{
		ContainerMetaEnabled: true,
	})

	data, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(data.Families) != 1 {
		t.Fatalf("Expected 1 metric family, got %d", len(data.Families))
	}

	family := data.Families[0]
	if family.Name != "container_meta_info" {
		t.Errorf("Expected family container_meta_info, got %s", family.Name)
	}
	if family.Type != "gauge" {
		t.Errorf("Expected type gauge, got %s", family.Type)
	}

	if len(family.Metrics) != 2 {
		t.Fatalf("Expected 2 metrics (one per container), got %d", len(family.Metrics))
	}

	for _, point := range family.Metrics {
		if point.Value != 1 {
			t.Errorf("Expected metric value 1, got %v", point.Value)
		}
		for _, label := range []string{"id", "name", "image", "com_docker_compose_service", "state", "full_id"} {
			if _, ok := point.Labels[label]; !ok {
				t.Errorf("Missing expected label %q", label)
			}
		}
	}

	first := family.Metrics[0]
	if first.Labels["id"] != "aaaaaaaaaaaa" {
		t.Errorf("Expected id label aaaaaaaaaaaa, got %s", first.Labels["id"])
	}
	if first.Labels["full_id"] != testContainers()[0].FullID {
		t.Errorf("Unexpected full_id label: %s", first.Labels["full_id"])
	}
	if first.Labels["com_docker_compose_service"] != "web" {
		t.Errorf("Unexpected service label: %s", first.Labels["com_docker_compose_service"])
	}
}

func TestCollectExporterInfoMetric(t *testing.T) {
	info := &mockInfoProvider{name: "host-1", version: "1.2.3"}
	collector := NewCollector(info, "test-uuid-1234", nil, CollectorConfig{
		ExporterInfoEnabled: true,
	})

	data, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(data.Families) != 1 {
		t.Fatalf("Expected 1 metric family, got %d", len(data.Families))
	}

	family := data.Families[0]
	if family.Name != "container_exporter_info" {
		t.Errorf("Expected family container_exporter_info, got %s", family.Name)
	}
	if len(family.Metrics) != 1 {
		t.Fatalf("Expected 1 metric, got %d", len(family.Metrics))
	}

	labels := family.Metrics[0].Labels
	if labels["exporter_uuid"] != "test-uuid-1234" {
		t.Errorf("Unexpected exporter_uuid: %s", labels["exporter_uuid"])
	}
	if labels["exporter_name"] != "host-1" {
		t.Errorf("Unexpected exporter_name: %s", labels["exporter_name"])
	}
	if labels["version"] != "1.2.3" {
		t.Errorf("Unexpected version: %s", labels["version"])
	}
}

func TestCollectDisabledFamilies(t *testing.T) {
	info := &mockInfoProvider{name: "host-1", version: "1.2.3"}
	provider := &mockContainerProvider{metas: testContainers()}

	collector := NewCollector(info, "uuid", provider, CollectorConfig{
		ContainerMetaEnabled: false,
		ExporterInfoEnabled:  false,
	})

	data, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(data.Families) != 0 {
		t.Errorf("Expected no families when all disabled, got %d", len(data.Families))
	}
}

func TestCollectEmptyContainerSet(t *testing.T) {
	provider := &mockContainerProvider{metas: nil}
	collector := NewCollector(nil, "", provider, CollectorConfig{
		ContainerMetaEnabled: true,
	})

	data, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(data.Families) != 1 {
		t.Fatalf("Expected 1 family, got %d", len(data.Families))
	}
	if len(data.Families[0].Metrics) != 0 {
		t.Errorf("Expected 0 metrics for empty container set, got %d", len(data.Families[0].Metrics))
	}

	// The family header is still emitted so scrapers see the series exists
	output := FormatPrometheus(data)
	if !strings.Contains(output, "# HELP container_meta_info") {
		t.Error("Expected HELP line for empty family")
	}
}
