package registration

import (
	"sync"
	"time"
)

// Manager holds the live form sessions. Sessions live in memory only and
// exist for the lifetime of one form-filling session.
type Manager struct {
	mu    sync.RWMutex
	forms map[string]*Form
}

func NewManager() *Manager {
	return &Manager{forms: make(map[string]*Form)}
}

// Create registers a new form session under the given ID.
func (m *Manager) Create(id string, submitDelay time.Duration, emit func(Record), onSuccess func()) *Form {
	f := NewForm(id, submitDelay, emit, onSuccess)
	m.mu.Lock()
	m.forms[id] = f
	m.mu.Unlock()
	return f
}

// Get looks up a live session.
func (m *Manager) Get(id string) (*Form, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.forms[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return f, nil
}
