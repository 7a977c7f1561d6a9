package assistant

import (
	"sync"
)

// Manager keeps the open sessions by id.
type Manager struct {
	deps Deps

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps, sessions: make(map[string]*Session)}
}

func (m *Manager) Create() *Session {
	s := NewSession(m.deps)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close tears down and forgets the session. Unknown ids are ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// CloseAll tears down every session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
