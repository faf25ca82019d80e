package cart

import (
	"context"
	"sync"
	"time"
)

const defaultStoreTTL = 30 * time.Minute

// Manager hands out one Store per session, constructed once at startup
// and shared by the cart and checkout handlers. Cached stores are
// evicted after sitting idle; the KV keeps the state, so eviction only
// costs a reload on the next request.
type Manager struct {
	mu     sync.Mutex
	kv     KV
	ttl    time.Duration
	stores map[string]*entry
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

func NewManager(kv KV) *Manager {
	return &Manager{kv: kv, ttl: defaultStoreTTL, stores: make(map[string]*entry)}
}

// Store returns the session's cart, loading it from the KV on first
// access.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.stores[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.store
	}
	e := &entry{store: NewStore(ctx, m.kv, sessionID), lastSeen: time.Now()}
	m.stores[sessionID] = e

	// Drop the entry once the session goes idle so one-off visitors
	// cannot grow the map forever.
	go m.evictWhenIdle(sessionID)

	return e.store
}

func (m *Manager) evictWhenIdle(sessionID string) {
	for {
		time.Sleep(m.ttl)
		m.mu.Lock()
		e, ok := m.stores[sessionID]
		if !ok {
			m.mu.Unlock()
			return
		}
		if time.Since(e.lastSeen) >= m.ttl {
			delete(m.stores, sessionID)
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()
	}
}

func (m *Manager) cached() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
