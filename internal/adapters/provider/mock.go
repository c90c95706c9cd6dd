package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/voxhub/voicerelay/internal/domain"
)

// Mock is a canned provider for tests and local development.
type Mock struct {
	// Reply is returned verbatim when set; otherwise the mock echoes the
	// last turn. Err, when set, is returned instead.
	Reply string
	Err   error

	mu    sync.Mutex
	calls []domain.Window
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Generate(_ context.Context, turns domain.Window, _ domain.ModelConfig) (string, error) {
	m.mu.Lock()
	window := make(domain.Window, len(turns))
	copy(window, turns)
	m.calls = append(m.calls, window)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}

	last := turns[len(turns)-1]
	return fmt.Sprintf("I heard you say %q.", last.Content), nil
}

// Calls returns every window the mock was asked to complete.
func (m *Mock) Calls() []domain.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Window(nil), m.calls...)
}
