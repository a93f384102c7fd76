// Package docker queries the Docker daemon for container metadata.
package docker

import (
	"context"
	"fmt"
	"strings"
	"time"

	containertypes "github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/mkarlsen/docker-meta-exporter/containers"
)

// composeServiceLabel is the label Docker Compose attaches to containers
// it manages. Containers without it fall back to their name.
const composeServiceLabel = "com.docker.compose.service"

// shortIDLength is the number of leading characters of a container ID
// used as the human-friendly join key.
const shortIDLength = 12

// SkippedContainer records one container that could not be extracted
// during a collection cycle.
type SkippedContainer struct {
	ID     string
	Reason string
}

// CollectReport summarizes the outcome of one collection cycle. A cycle
// with skipped containers is still a successful cycle; only a failed
// daemon connection aborts collection entirely.
type CollectReport struct {
	Collected int
	Skipped   []SkippedContainer
}

// Collector lists containers from the Docker daemon and extracts their
// metadata attributes.
type Collector struct {
	timeout time.Duration
}

// NewCollector creates a collector. The timeout bounds each daemon call.
func NewCollector(timeout time.Duration) *Collector {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Collector{timeout: timeout}
}

// IsDockerAvailable checks if the Docker daemon is accessible
func IsDockerAvailable() bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer func() { _ = cli.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = cli.Ping(ctx)
	return err == nil
}

// Collect queries the daemon for all containers (running and stopped) and
// extracts metadata for each. Containers that cannot be extracted are
// skipped and reported; they never abort the cycle. A connection failure
// returns an error and no metadata, leaving the caller's state untouched.
func (c *Collector) Collect(ctx context.Context) ([]containers.ContainerMeta, *CollectReport, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	defer func() { _ = cli.Close() }()

	listCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	containerList, err := cli.ContainerList(listCtx, containertypes.ListOptions{All: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list containers: %w", err)
	}

	metas := make([]containers.ContainerMeta, 0, len(containerList))
	report := &CollectReport{}

	for _, summary := range containerList {
		meta, err := metaFromSummary(summary)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedContainer{
				ID:     summary.ID,
				Reason: err.Error(),
			})
			continue
		}
		metas = append(metas, meta)
	}

	report.Collected = len(metas)
	return metas, report, nil
}

// metaFromSummary extracts the six metadata attributes from a container
// list entry.
func metaFromSummary(summary containertypes.Summary) (containers.ContainerMeta, error) {
	fullID := summary.ID
	if fullID == "" {
		return containers.ContainerMeta{}, fmt.Errorf("container has no ID")
	}

	shortID := fullID
	if len(fullID) > shortIDLength {
		shortID = fullID[:shortIDLength]
	}

	// Container name with the leading slash stripped
	name := ""
	if len(summary.Names) > 0 {
		name = strings.TrimPrefix(summary.Names[0], "/")
	}
	if name == "" {
		name = shortID
	}

	// Image tag, falling back to the image ID when the container's image
	// is untagged (the list API then reports a bare ID in the Image field)
	image := summary.Image
	if image == "" || strings.HasPrefix(image, "sha256:") {
		image = summary.ImageID
	}
	if image == "" {
		return containers.ContainerMeta{}, fmt.Errorf("container %s has no image reference", shortID)
	}

	// Compose service label, falling back to the container name
	service := summary.Labels[composeServiceLabel]
	if service == "" {
		service = name
	}

	return containers.ContainerMeta{
		FullID:  fullID,
		ShortID: shortID,
		Name:    name,
		Image:   image,
		Service: service,
		State:   summary.State,
	}, nil
}
