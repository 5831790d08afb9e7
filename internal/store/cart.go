package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/storage"
)

// CartStore tracks purchase intent: one line per product, quantities
// accumulated across adds. Mutations persist the full snapshot and notify
// subscribers. Invalid mutations (absent product, non-positive add) are
// silent no-ops; Contains lets callers tell a no-op from a success.
type CartStore struct {
	mu     sync.RWMutex
	lines  []domain.CartLine
	kv     storage.KV
	logger *zap.Logger

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

type cartSnapshot struct {
	Items []domain.CartLine `json:"items"`
}

// NewCartStore rehydrates the cart from the KV backend. A missing snapshot
// means a fresh cart; a corrupt or unreadable one is logged and discarded.
func NewCartStore(kv storage.KV, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CartStore{
		kv:     kv,
		logger: logger,
		subs:   make(map[int]func()),
	}
	s.load()
	return s
}

func (s *CartStore) load() {
	ctx, cancel := persistCtx()
	defer cancel()

	data, err := s.kv.Get(ctx, cartStorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("cart snapshot load failed", zap.Error(err))
		return
	}

	var snap cartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("cart snapshot corrupt, starting empty", zap.Error(err))
		return
	}
	s.lines = snap.Items
}

// Add appends quantity to the product's line, creating the line when the
// product is not in the cart yet. Adds with quantity <= 0 are ignored.
// Stock ceilings are the caller's concern; see CanAdd.
func (s *CartStore) Add(product domain.Product, quantity int) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity += quantity
			s.lines[i].Product = product // refresh to the latest catalog view
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, domain.CartLine{Product: product, Quantity: quantity})
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity sets the line's quantity exactly. A quantity <= 0 removes
// the line; an unknown product is a silent no-op.
func (s *CartStore) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}

	s.mu.Lock()
	changed := false
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = quantity
			changed = true
			break
		}
	}
	if changed {
		s.persistLocked()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Remove deletes the product's line if present.
func (s *CartStore) Remove(productID string) {
	s.mu.Lock()
	changed := false
	for i, line := range s.lines {
		if line.Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			changed = true
			break
		}
	}
	if changed {
		s.persistLocked()
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Clear empties the cart. Called after a successful order submission.
func (s *CartStore) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
}

// Item returns the line for a product.
func (s *CartStore) Item(productID string) (domain.CartLine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, line := range s.lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// Contains reports whether the product has a line in the cart.
func (s *CartStore) Contains(productID string) bool {
	_, ok := s.Item(productID)
	return ok
}

// Lines returns a copy of the cart lines in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the exact sum of all line quantities.
func (s *CartStore) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// BadgeLabel formats TotalItems for the cart badge, capping at "99+".
func (s *CartStore) BadgeLabel() string {
	total := s.TotalItems()
	if total > 99 {
		return "99+"
	}
	return fmt.Sprintf("%d", total)
}

// TotalPrice sums price*quantity over all lines using the product prices
// currently held in the cart. Prices are only frozen at checkout.
func (s *CartStore) TotalPrice() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, line := range s.lines {
		total += line.Subtotal()
	}
	return total
}

// CanAdd reports whether adding quantity more of the product would stay
// within its known stock. The store itself never rejects over-stock adds;
// screens use this to disable the add button.
func (s *CartStore) CanAdd(product domain.Product, quantity int) bool {
	if quantity <= 0 || !product.IsAvailable {
		return false
	}
	current := 0
	if line, ok := s.Item(product.ID); ok {
		current = line.Quantity
	}
	return current+quantity <= product.Stock
}

// Subscribe registers a callback invoked after every mutation. The returned
// function unsubscribes.
func (s *CartStore) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *CartStore) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// persistLocked writes the snapshot; the in-memory state stays authoritative
// when the write fails, so a failure is logged and otherwise ignored.
func (s *CartStore) persistLocked() {
	data, err := json.Marshal(cartSnapshot{Items: s.lines})
	if err != nil {
		s.logger.Error("cart snapshot marshal failed", zap.Error(err))
		return
	}

	ctx, cancel := persistCtx()
	defer cancel()
	if err := s.kv.Set(ctx, cartStorageKey, data); err != nil {
		s.logger.Warn("cart snapshot persist failed", zap.Error(err))
	}
}
