// Package jobs contains the scheduled jobs run by docker-meta-exporter.
package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/mkarlsen/docker-meta-exporter/containers"
	"github.com/mkarlsen/docker-meta-exporter/docker"
)

// CollectorInterface defines the interface for gathering container metadata
type CollectorInterface interface {
	Collect(ctx context.Context) ([]containers.ContainerMeta, *docker.CollectReport, error)
}

// ManagerInterface defines the interface for the container metadata store
type ManagerInterface interface {
	SetContainers(metas []containers.ContainerMeta)
}

// RefreshContainersJob queries the Docker daemon and replaces the published
// container metadata set. One run is one collection-and-publish cycle.
type RefreshContainersJob struct {
	collector CollectorInterface
	manager   ManagerInterface
}

// NewRefreshContainersJob creates a new container refresh job
func NewRefreshContainersJob(collector CollectorInterface, manager ManagerInterface) *RefreshContainersJob {
	if collector == nil {
		panic("RefreshContainersJob requires a non-nil collector")
	}
	if manager == nil {
		panic("RefreshContainersJob requires a non-nil manager")
	}

	return &RefreshContainersJob{
		collector: collector,
		manager:   manager,
	}
}

func (j *RefreshContainersJob) Name() string {
	return "refresh-containers"
}

func (j *RefreshContainersJob) Run(ctx context.Context) error {
	metas, report, err := j.collector.Collect(ctx)
	if err != nil {
		// Connection failure: leave the published set untouched, the next
		// scheduled run retries.
		return fmt.Errorf("failed to collect container metadata: %w", err)
	}

	for _, skipped := range report.Skipped {
		log.Printf("[refresh-containers] Warning: skipped container %s: %s", skipped.ID, skipped.Reason)
	}

	j.manager.SetContainers(metas)

	if len(report.Skipped) > 0 {
		log.Printf("[refresh-containers] Published %d containers, skipped %d", report.Collected, len(report.Skipped))
	}
	return nil
}

// Ensure docker.Collector implements CollectorInterface
var _ CollectorInterface = (*docker.Collector)(nil)

// Ensure containers.Manager implements ManagerInterface
var _ ManagerInterface = (*containers.Manager)(nil)
