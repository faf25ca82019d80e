package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/clevercapitalinsights/marciah-crochet-closet/models"
)

// KV is the durable store a cart snapshot is written to on every
// mutation. rdx.KV satisfies it; tests use an in-memory fake.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Store holds one session's cart. Lines are keyed by
// (product id, selected color, selected size); no two lines share a
// key and every quantity stays >= 1.
type Store struct {
	mu    sync.Mutex
	kv    KV
	key   string
	lines []models.CartLine
	open  bool
}

// NewStore loads the session's cart from the KV. Missing or malformed
// stored data yields an empty cart, never an error.
func NewStore(ctx context.Context, kv KV, sessionID string) *Store {
	s := &Store{kv: kv, key: "cart:" + sessionID}
	raw, ok, err := kv.Get(ctx, s.key)
	if err != nil {
		log.Println("cart: load failed, starting empty:", err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.lines); err != nil {
		log.Printf("cart: bad stored data for %s, starting empty: %v", s.key, err)
		s.lines = nil
	}
	return s
}

// AddItem merges into an existing line with the same key, or appends a
// new line with quantity 1. It also flips the cart-open indicator on.
func (s *Store) AddItem(ctx context.Context, product models.Product, color, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].Matches(product.ID, color, size) {
			s.lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, models.CartLine{
			Product:       product,
			Quantity:      1,
			SelectedColor: color,
			SelectedSize:  size,
		})
	}
	s.open = true
	return s.save(ctx)
}

// RemoveItem deletes the line matching the key; no-op when absent.
func (s *Store) RemoveItem(ctx context.Context, productID, color, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(ctx, productID, color, size)
}

func (s *Store) removeLocked(ctx context.Context, productID, color, size string) error {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if !l.Matches(productID, color, size) {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return s.save(ctx)
}

// UpdateQuantity sets the matching line's quantity exactly. A quantity
// of zero or below removes the line instead. No-op when no line
// matches.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, color, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, productID, color, size)
	}
	for i := range s.lines {
		if s.lines[i].Matches(productID, color, size) {
			s.lines[i].Quantity = quantity
			return s.save(ctx)
		}
	}
	return nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return s.save(ctx)
}

func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

// Snapshot is the cart as handed to the client, with totals recomputed
// on every read.
type Snapshot struct {
	Items      []models.CartLine `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int               `json:"totalPrice"`
	IsOpen     bool              `json:"isCartOpen"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartLine, len(s.lines))
	copy(items, s.lines)

	snap := Snapshot{Items: items, IsOpen: s.open}
	for _, l := range s.lines {
		snap.TotalItems += l.Quantity
		snap.TotalPrice += l.Product.Price * l.Quantity
	}
	return snap
}

func (s *Store) TotalItems() int { return s.Snapshot().TotalItems }
func (s *Store) TotalPrice() int { return s.Snapshot().TotalPrice }

// Lines returns a copy of the current lines.
func (s *Store) Lines() []models.CartLine { return s.Snapshot().Items }

// save writes the full line list under the session key, or deletes the
// key when the cart is empty. Callers hold the lock.
func (s *Store) save(ctx context.Context) error {
	if len(s.lines) == 0 {
		return s.kv.Del(ctx, s.key)
	}
	data, err := json.Marshal(s.lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, string(data))
}
