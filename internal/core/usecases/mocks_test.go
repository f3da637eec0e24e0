// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"fmt"
	"sync"

	"sqlihunt/internal/adapters/artifactstore"
	"sqlihunt/internal/core/domain"
	"sqlihunt/internal/core/ports"
)

// mockEnumerator returns fixed lines and records its inputs.
type mockEnumerator struct {
	name    string
	lines   []string
	err     error
	initErr error

	mu     sync.Mutex
	calls  int
	inputs [][]string
}

func newMockEnumerator(name string, lines ...string) *mockEnumerator {
	return &mockEnumerator{name: name, lines: lines}
}

func (m *mockEnumerator) Name() string { return m.name }

func (m *mockEnumerator) Run(ctx context.Context, target domain.Target, input []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return m.lines, nil
}

func (m *mockEnumerator) Initialize() error { return m.initErr }

func (m *mockEnumerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockScanner records scanned URLs and launched batches. Batch processes
// block until release is closed.
type mockScanner struct {
	mu       sync.Mutex
	scanned  []string
	failURLs map[string]bool
	batches  []domain.Batch
	locators []string
	startErr map[string]error
	waitErr  map[string]error
	release  chan struct{}
}

func newMockScanner() *mockScanner {
	return &mockScanner{
		failURLs: make(map[string]bool),
		startErr: make(map[string]error),
		waitErr:  make(map[string]error),
		release:  make(chan struct{}),
	}
}

func (m *mockScanner) Name() string { return "mock-sqlmap" }

func (m *mockScanner) ScanURL(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanned = append(m.scanned, url)
	if m.failURLs[url] {
		return fmt.Errorf("scan %s: exit status 1", url)
	}
	return nil
}

func (m *mockScanner) StartBatch(batch domain.Batch, locator string) (ports.RunningScan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.startErr[batch.Name.String()]; err != nil {
		return nil, err
	}
	m.batches = append(m.batches, batch)
	m.locators = append(m.locators, locator)
	return &mockRunningScan{
		pid:     1000 + batch.Index,
		log:     batch.Name.String() + ".log",
		release: m.release,
		err:     m.waitErr[batch.Name.String()],
	}, nil
}

func (m *mockScanner) scannedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.scanned...)
}

func (m *mockScanner) launched() []domain.Batch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Batch(nil), m.batches...)
}

type mockRunningScan struct {
	pid     int
	log     string
	release chan struct{}
	err     error
}

func (r *mockRunningScan) PID() int        { return r.pid }
func (r *mockRunningScan) LogPath() string { return r.log }

func (r *mockRunningScan) Wait() error {
	<-r.release
	return r.err
}

// mockOperator returns preset answers and counts questions.
type mockOperator struct {
	archive   bool
	mode      domain.ScanMode
	modeErr   error
	params    *domain.ParameterSet
	archiveQs int
	modeQs    int
	paramQs   int
}

func (m *mockOperator) ConfirmArchiveFetch(ctx context.Context) (bool, error) {
	m.archiveQs++
	return m.archive, nil
}

func (m *mockOperator) SelectMode(ctx context.Context) (domain.ScanMode, error) {
	m.modeQs++
	if m.modeErr != nil {
		return "", m.modeErr
	}
	return m.mode, nil
}

func (m *mockOperator) ResolveParams(ctx context.Context, defaults domain.ParameterSet) (domain.ParameterSet, error) {
	m.paramQs++
	if m.params != nil {
		return *m.params, nil
	}
	return defaults, nil
}

// storeOp is one mutating call seen by recordingStore.
type storeOp struct {
	Op   string
	Name string
}

// recordingStore wraps a MemoryStore and logs every mutation in order.
type recordingStore struct {
	*artifactstore.MemoryStore
	mu  sync.Mutex
	ops []storeOp
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: artifactstore.NewMemoryStore()}
}

func (r *recordingStore) record(op, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, storeOp{Op: op, Name: name})
}

func (r *recordingStore) ResetAll() error {
	r.record("reset", "")
	return r.MemoryStore.ResetAll()
}

func (r *recordingStore) ResetBatches() error {
	r.record("reset-batches", "")
	return r.MemoryStore.ResetBatches()
}

func (r *recordingStore) SaveLastDomain(d string) error {
	r.record("save-domain", d)
	return r.MemoryStore.SaveLastDomain(d)
}

func (r *recordingStore) WriteLines(name domain.ArtifactName, lines []string) error {
	r.record("write", name.String())
	return r.MemoryStore.WriteLines(name, lines)
}

func (r *recordingStore) AppendLines(name domain.ArtifactName, lines []string) error {
	r.record("append", name.String())
	return r.MemoryStore.AppendLines(name, lines)
}

func (r *recordingStore) operations() []storeOp {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]storeOp(nil), r.ops...)
}

func (r *recordingStore) clearOps() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func makeURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://shop.example.com/item%04d?id=%d", i, i)
	}
	return urls
}
