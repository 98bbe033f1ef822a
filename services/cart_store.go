package services

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/calvinlm/Arco-Prototype/logging"
	"github.com/calvinlm/Arco-Prototype/models"
)

// CartObserver receives the cart state after every change.
type CartObserver func(models.CartSnapshot)

// CartStore is the single source of truth for one shopping cart.
//
// Lines are keyed by product id and kept in insertion order. Item count and
// total are always derived from the lines on read. Every mutation that changes
// the cart bumps the version and notifies observers, in mutation order, before
// it returns. Observers must not mutate the store or unsubscribe from inside
// the callback.
type CartStore struct {
	mu      sync.RWMutex
	lines   map[string]*models.CartLine
	order   []string
	version uint64

	// notifyMu is taken before mu is released so deliveries keep mutation order.
	notifyMu     sync.Mutex
	observers    map[int]CartObserver
	nextObserver int

	logger *zap.Logger
}

func NewCartStore(logger *zap.Logger) *CartStore {
	return &CartStore{
		lines:     make(map[string]*models.CartLine),
		observers: make(map[int]CartObserver),
		logger:    logging.OrNop(logger),
	}
}

// AddItem merges product into the cart: an existing line gains one unit,
// otherwise a new line with quantity 1 is appended.
func (s *CartStore) AddItem(product models.Product) {
	id := strings.TrimSpace(product.ID)
	if id == "" {
		s.logger.Warn("ignoring product without id", zap.String("name", product.Name))
		return
	}

	s.mutate(func() bool {
		if line, ok := s.lines[id]; ok {
			line.Quantity++
			return true
		}

		price := product.Price
		if price.IsNegative() {
			s.logger.Warn("clamping negative price", zap.String("product_id", id), zap.String("price", price.String()))
			price = decimal.Zero
		}
		s.lines[id] = &models.CartLine{
			ID:                 id,
			Name:               product.Name,
			Price:              price,
			ThumbnailURL:       product.ThumbnailURL,
			AffiliateURLShopee: product.AffiliateURLShopee,
			AffiliateURLLazada: product.AffiliateURLLazada,
			Quantity:           1,
		}
		s.order = append(s.order, id)
		return true
	})
}

// UpdateQuantity sets a line's quantity exactly. Zero or less removes the
// line. Unknown ids are ignored.
func (s *CartStore) UpdateQuantity(id string, quantity int) {
	s.mutate(func() bool {
		line, ok := s.lines[id]
		if !ok {
			return false
		}
		if quantity <= 0 {
			s.removeLocked(id)
			return true
		}
		if line.Quantity == quantity {
			return false
		}
		line.Quantity = quantity
		return true
	})
}

// RemoveItem drops the line for id if present.
func (s *CartStore) RemoveItem(id string) {
	s.mutate(func() bool {
		if _, ok := s.lines[id]; !ok {
			return false
		}
		s.removeLocked(id)
		return true
	})
}

// Clear empties the cart.
func (s *CartStore) Clear() {
	s.mutate(func() bool {
		if len(s.lines) == 0 {
			return false
		}
		s.lines = make(map[string]*models.CartLine)
		s.order = nil
		return true
	})
}

// Items returns copies of the lines in insertion order.
func (s *CartStore) Items() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked()
}

// ItemCount is the sum of all line quantities.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Total is the sum of price × quantity over all lines, in canonical currency.
func (s *CartStore) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Version increases by one with every change to the cart.
func (s *CartStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot reads lines and derived values under a single lock.
func (s *CartStore) Snapshot() models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for change notifications. The returned function
// unregisters it and is safe to call more than once.
func (s *CartStore) Subscribe(fn CartObserver) (unsubscribe func()) {
	s.notifyMu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = fn
	s.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.notifyMu.Lock()
			delete(s.observers, id)
			s.notifyMu.Unlock()
		})
	}
}

func (s *CartStore) mutate(apply func() bool) {
	s.mu.Lock()
	if !apply() {
		s.mu.Unlock()
		return
	}
	s.version++
	snap := s.snapshotLocked()

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, observer := range s.observers {
		observer(snap)
	}
}

func (s *CartStore) removeLocked(id string) {
	delete(s.lines, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *CartStore) itemsLocked() []models.CartLine {
	items := make([]models.CartLine, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, *s.lines[id])
	}
	return items
}

func (s *CartStore) snapshotLocked() models.CartSnapshot {
	items := s.itemsLocked()
	count := 0
	total := decimal.Zero
	for _, line := range items {
		count += line.Quantity
		total = total.Add(line.LineTotal())
	}
	return models.CartSnapshot{
		Items:     items,
		ItemCount: count,
		Total:     total,
		Version:   s.version,
	}
}
