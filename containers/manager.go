package containers

import (
	"log"
	"sync"
)

// Manager holds the current set of container metadata entries. It is the
// single piece of state carried between refresh cycles: the refresh job
// replaces the whole set, the metrics collector reads it at scrape time.
type Manager struct {
	mu         sync.RWMutex
	containers map[string]ContainerMeta // key: full label tuple
}

// NewManager creates a new container metadata manager
func NewManager() *Manager {
	return &Manager{
		containers: make(map[string]ContainerMeta),
	}
}

// makeKey creates a unique key for a container metadata entry. The key
// covers every attribute, so a changed attribute produces a new entry and
// the stale one is dropped by the next SetContainers call.
func makeKey(c ContainerMeta) string {
	return c.ShortID + "/" + c.Name + "/" + c.Image + "/" + c.Service + "/" + c.State + "/" + c.FullID
}

// SetContainers replaces the entire collection of container metadata.
// The previous set is discarded unconditionally; there is no incremental
// diffing, so entries for removed or changed containers never survive.
func (m *Manager) SetContainers(metas []ContainerMeta) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.containers = make(map[string]ContainerMeta, len(metas))
	for _, c := range metas {
		m.containers[makeKey(c)] = c
	}

	// One summary line per cycle, not one per container
	states := make(map[string]int)
	for _, c := range metas {
		states[c.State]++
	}
	log.Printf("Set containers: %d entries, states=%v", len(metas), states)
}

// GetAllContainers returns all container metadata entries (thread-safe copy)
func (m *Manager) GetAllContainers() []ContainerMeta {
	m.mu.RLock()
	defer m.mu.RUnlock()

	metas := make([]ContainerMeta, 0, len(m.containers))
	for _, c := range m.containers {
		metas = append(metas, c)
	}
	return metas
}

// GetContainerCount returns the number of container metadata entries
func (m *Manager) GetContainerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.containers)
}
