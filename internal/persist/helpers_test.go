package persist

import (
	"context"
	"sync"
	"testing"
	"time"
)

// memExecutor is an in-memory host executor with injectable failures.
type memExecutor struct {
	mu sync.Mutex

	dir        string
	resolveErr error
	readErr    error
	writeErr   error
	copyErr    error

	files    map[string]string
	resolves int
	reads    int
	writes   int
}

func newMemExecutor() *memExecutor {
	return &memExecutor{dir: "/data", files: map[string]string{}}
}

// ResolveDataDirectory returns the configured directory.
func (m *memExecutor) ResolveDataDirectory(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolves++
	return m.dir, m.resolveErr
}

// ReadFile returns the stored content, absent when missing.
func (m *memExecutor) ReadFile(_ context.Context, path string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return "", false, m.readErr
	}
	content, ok := m.files[path]
	return content, ok, nil
}

// WriteFile stores content unless a write failure is configured.
func (m *memExecutor) WriteFile(_ context.Context, path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.files[path] = content
	return nil
}

// CopyFile duplicates src unless a copy failure is configured.
func (m *memExecutor) CopyFile(_ context.Context, src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.copyErr != nil {
		return m.copyErr
	}
	m.files[dst] = m.files[src]
	return nil
}

func (m *memExecutor) file(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	return content, ok
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// readyGateway returns an initialized gateway with a fixed clock.
func readyGateway(t *testing.T, exec *memExecutor) *Gateway {
	t.Helper()
	g := NewGateway(exec, nil)
	g.now = func() time.Time { return fixedNow }
	if err := g.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return g
}
