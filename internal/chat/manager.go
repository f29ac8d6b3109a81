package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// Manager is the registry of live sessions. Sessions idle for longer than
// the TTL are dropped on the next registry access; a zero TTL disables
// expiry.
type Manager struct {
	deps Deps
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty registry.
func NewManager(deps Deps, ttl time.Duration) *Manager {
	return &Manager{
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating it when id is empty or unknown.
// The returned session's ID may differ from id.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.expireLocked(now)

	s, ok := m.sessions[id]
	if !ok || id == "" {
		if id == "" {
			id = uuid.NewString()
		}
		s = newSession(id, &m.deps)
		m.sessions[id] = s
		zlog.Debug().Str("session", id).Msg("session created")
	}
	s.lastUsed = now
	return s
}

// Lookup returns an existing session without creating one.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.expireLocked(now)

	s, ok := m.sessions[id]
	if ok {
		s.lastUsed = now
	}
	return s, ok
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expireLocked(m.now())
	return len(m.sessions)
}

func (m *Manager) expireLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	for id, s := range m.sessions {
		if now.Sub(s.lastUsed) > m.ttl {
			delete(m.sessions, id)
			zlog.Debug().Str("session", id).Msg("session expired")
		}
	}
}
