package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keys live stores by session ID. A session ends when the client goes
// away; the sweeper reclaims stores that have not been touched within the TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
	}

	go m.sweep()
	return m
}

// Create allocates a fresh store and returns its session ID.
func (m *Manager) Create() (string, *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	store := NewStore()
	m.sessions[id] = &sessionEntry{store: store, lastSeen: time.Now()}
	return id, store
}

// Get returns the store for id, refreshing its TTL. The second return is false
// when the session is unknown or already swept.
func (m *Manager) Get(id string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.store, true
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for id, entry := range m.sessions {
			if now.Sub(entry.lastSeen) > m.ttl {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}
