package wishlist

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/clevercapitalinsights/marciah-crochet-closet/cart"
)

// Store holds one session's wishlist: product IDs without duplicates,
// in insertion order. Persistence mirrors the cart store.
type Store struct {
	mu  sync.Mutex
	kv  cart.KV
	key string
	ids []string
}

func NewStore(ctx context.Context, kv cart.KV, sessionID string) *Store {
	s := &Store{kv: kv, key: "wishlist:" + sessionID}
	raw, ok, err := kv.Get(ctx, s.key)
	if err != nil {
		log.Println("wishlist: load failed, starting empty:", err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.ids); err != nil {
		log.Printf("wishlist: bad stored data for %s, starting empty: %v", s.key, err)
		s.ids = nil
	}
	return s
}

// Toggle removes the id when present, otherwise appends it. Returns
// whether the id is wishlisted afterwards.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return false, s.save(ctx)
		}
	}
	s.ids = append(s.ids, id)
	return true, s.save(ctx)
}

// Contains is a pure membership test.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the wishlist in insertion order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// save mirrors the cart store: an empty wishlist deletes the key.
func (s *Store) save(ctx context.Context) error {
	if len(s.ids) == 0 {
		return s.kv.Del(ctx, s.key)
	}
	data, err := json.Marshal(s.ids)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, string(data))
}

const defaultStoreTTL = 30 * time.Minute

// Manager hands out one Store per session. Idle stores are evicted the
// same way the cart manager does it; the KV keeps the state.
type Manager struct {
	mu     sync.Mutex
	kv     cart.KV
	ttl    time.Duration
	stores map[string]*entry
}

type entry struct {
	store    *Store
	lastSeen time.Time
}

func NewManager(kv cart.KV) *Manager {
	return &Manager{kv: kv, ttl: defaultStoreTTL, stores: make(map[string]*entry)}
}

func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.stores[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.store
	}
	e := &entry{store: NewStore(ctx, m.kv, sessionID), lastSeen: time.Now()}
	m.stores[sessionID] = e
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
