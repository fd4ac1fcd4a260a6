package testutil

import (
	"sync"
	"time"
)

// Metrics records mutation stages and cache lookups
type Metrics struct {
	mu        sync.Mutex
	Stages    map[string][]string
	Persisted map[string]int
	Hits      int
	Misses    int
}

// NewMetrics creates an empty recorder
func NewMetrics() *Metrics {
	return &Metrics{Stages: map[string][]string{}, Persisted: map[string]int{}}
}

func (m *Metrics) IncMutation(operation, stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stages[operation] = append(m.Stages[operation], stage)
}

func (m *Metrics) ObservePersist(operation string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted[operation]++
}

func (m *Metrics) IncCacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.Hits++
	} else {
		m.Misses++
	}
}
