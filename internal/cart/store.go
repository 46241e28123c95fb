// Package cart holds the in-memory shopping carts for active storefront
// sessions. Carts live for the duration of a session only; nothing is
// persisted.
package cart

import (
	"sync"
	"time"
)

// Line pairs a product id with a quantity. A cart holds at most one line
// per product id, in insertion order.
type Line struct {
	ProductID int
	Quantity  int
}

type sessionCart struct {
	lines     []Line
	touchedAt time.Time
}

// Store owns every session's cart. All methods are safe for concurrent use;
// derived totals are never cached here, they are recomputed from the lines
// on every read.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionCart
	now      func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*sessionCart),
		now:      time.Now,
	}
}

func (s *Store) cart(sessionID string) *sessionCart {
	c, ok := s.sessions[sessionID]
	if !ok {
		c = &sessionCart{}
		s.sessions[sessionID] = c
	}
	c.touchedAt = s.now()
	return c
}

// AddItem merges qty into an existing line for the product or appends a new
// line. Non-positive quantities are clamped to 1.
func (s *Store) AddItem(sessionID string, productID, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, Line{ProductID: productID, Quantity: qty})
}

// UpdateQuantity sets the line's quantity to max(1, qty). Removal is the
// only path to zero, so this never drops a line. No-op when the product is
// not in the cart.
func (s *Store) UpdateQuantity(sessionID string, productID, qty int) {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// RemoveItem deletes the product's line. Idempotent: removing an absent
// product is a no-op.
func (s *Store) RemoveItem(sessionID string, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the session's cart. Used after a successful checkout.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart(sessionID).lines = nil
}

// Lines returns a copy of the session's lines in insertion order.
func (s *Store) Lines(sessionID string) []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// PruneIdle drops sessions untouched for longer than maxIdle and reports
// how many were removed.
func (s *Store) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, c := range s.sessions {
		if c.touchedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
