package artifactstore

import (
	"strings"
	"sync"

	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
)

// MemoryStore is a map-backed ArtifactStore for tests and dry runs.
// Locate returns a "mem://" reference that no real tool can open.
type MemoryStore struct {
	mu         sync.Mutex
	lastDomain string
	hasDomain  bool
	artifacts  map[domain.ArtifactName][]string
}

var _ ports.ArtifactStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artifacts: make(map[domain.ArtifactName][]string)}
}

func (m *MemoryStore) LoadLastDomain() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastDomain, m.hasDomain && m.lastDomain != "", nil
}

func (m *MemoryStore) SaveLastDomain(d string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDomain, m.hasDomain = d, true
	return nil
}

func (m *MemoryStore) ResetAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts = make(map[domain.ArtifactName][]string)
	m.lastDomain, m.hasDomain = "", false
	return nil
}

func (m *MemoryStore) ResetBatches() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name := range m.artifacts {
		if name.IsBatch() {
			delete(m.artifacts, name)
		}
	}
	return nil
}

func (m *MemoryStore) ReadLines(name domain.ArtifactName) ([]string, error) {
	if _, err := name.FileName(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	lines, ok := m.artifacts[name]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out, nil
}

func (m *MemoryStore) WriteLines(name domain.ArtifactName, lines []string) error {
	if _, err := name.FileName(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[name] = clean(lines)
	return nil
}

func (m *MemoryStore) AppendLines(name domain.ArtifactName, lines []string) error {
	if _, err := name.FileName(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[name] = append(m.artifacts[name], clean(lines)...)
	return nil
}

func (m *MemoryStore) Locate(name domain.ArtifactName) (string, error) {
	file, err := name.FileName()
	if err != nil {
		return "", err
	}
	return "mem://" + file, nil
}

// Has reports whether name has been written since the last reset.
func (m *MemoryStore) Has(name domain.ArtifactName) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.artifacts[name]
	return ok
}

// clean mirrors what FileStore.ReadLines would hand back after a round trip.
func clean(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
