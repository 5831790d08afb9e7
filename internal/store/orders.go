package store

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/storage"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// OrdersStore owns the shopper's local order ledger. Orders are never
// deleted; cancellation is a status. Most-recent-first is the display order.
type OrdersStore struct {
	mu     sync.RWMutex
	orders []domain.Order
	kv     storage.KV
	logger *zap.Logger

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

type ordersSnapshot struct {
	Orders []domain.Order `json:"orders"`
}

func NewOrdersStore(kv storage.KV, logger *zap.Logger) *OrdersStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &OrdersStore{
		kv:     kv,
		logger: logger,
		subs:   make(map[int]func()),
	}
	s.load()
	return s
}

func (s *OrdersStore) load() {
	ctx, cancel := persistCtx()
	defer cancel()

	data, err := s.kv.Get(ctx, ordersStorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("orders snapshot load failed", zap.Error(err))
		return
	}

	var snap ordersSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("orders snapshot corrupt, starting empty", zap.Error(err))
		return
	}
	s.orders = snap.Orders
}

// Add prepends the order to the ledger. The order must arrive with its
// totalAmount computed and its lines frozen; the store never recalculates.
func (s *OrdersStore) Add(order domain.Order) {
	s.mu.Lock()
	s.orders = append([]domain.Order{order}, s.orders...)
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
}

// UpdateStatus overwrites the order's status and refreshes its UpdatedAt
// timestamp. Unknown ids are a silent no-op. No transition check happens
// here: this is the sync path for statuses pushed by the backend, which is
// the source of truth for fulfilment progress.
func (s *OrdersStore) UpdateStatus(orderID string, status domain.OrderStatus) {
	s.mu.Lock()
	changed := false
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].Status = status
			s.orders[i].UpdatedAt = time.Now()
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

// Cancel moves the order to ANNULEE. Unlike UpdateStatus it enforces the
// lifecycle: only EN_ATTENTE and CONFIRMEE orders may be cancelled, and
// cancelling an already cancelled order is an idempotent success.
func (s *OrdersStore) Cancel(orderID string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrOrderNotFound
	}
	if s.orders[idx].Status == domain.OrderStatusCancelled {
		s.mu.Unlock()
		return nil // already cancelled
	}
	if !s.orders[idx].Status.IsCancellable() {
		s.mu.Unlock()
		return ErrNotCancellable
	}

	s.orders[idx].Status = domain.OrderStatusCancelled
	s.orders[idx].UpdatedAt = time.Now()
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Orders returns all orders sorted by creation time, newest first.
func (s *OrdersStore) Orders() []domain.Order {
	s.mu.RLock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// OrderByID is a point lookup.
func (s *OrdersStore) OrderByID(orderID string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return domain.Order{}, false
}

// Subscribe registers a callback invoked after every mutation. The returned
// function unsubscribes.
func (s *OrdersStore) Subscribe(fn func()) func() {
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

func (s *OrdersStore) notify() {
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

func (s *OrdersStore) persistLocked() {
	data, err := json.Marshal(ordersSnapshot{Orders: s.orders})
	if err != nil {
		s.logger.Error("orders snapshot marshal failed", zap.Error(err))
		return
	}

	ctx, cancel := persistCtx()
	defer cancel()
	if err := s.kv.Set(ctx, ordersStorageKey, data); err != nil {
		s.logger.Warn("orders snapshot persist failed", zap.Error(err))
	}
}
