package cart

import "sync"

// NoPriceOverride makes AddLine use the product's base price.
const NoPriceOverride = -1

// ProductFinder resolves a product id to the display fields a new line
// copies. The catalog stays read-only behind this interface.
type ProductFinder interface {
	FindProduct(id string) (Product, bool)
}

// Store holds the authoritative lineKey -> line mapping. All operations are
// total: unknown ids and absent keys degrade to no-ops, never errors. The
// mutex keeps mutations atomic with respect to Snapshot since handlers run
// on the server's goroutines.
type Store struct {
	products ProductFinder

	mu    sync.Mutex
	lines map[LineKey]*Line
	order []LineKey
}

func NewStore(products ProductFinder) *Store {
	return &Store{
		products: products,
		lines:    make(map[LineKey]*Line),
	}
}

// AddLine creates the line for (productID, variant) if absent and increments
// its quantity by qtyDelta. The unit price is fixed at creation time:
// unitPriceOverride if non-negative, the product's base price otherwise.
// Unknown product ids are ignored. A delta that leaves the quantity at or
// below zero removes the line, so a non-positive delta on a fresh line is a
// no-op overall.
func (s *Store) AddLine(productID string, qtyDelta int, variant string, unitPriceOverride int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := LineKey{ProductID: productID, Variant: variant}
	ln, ok := s.lines[key]
	if !ok {
		prod, found := s.products.FindProduct(productID)
		if !found {
			return
		}
		price := prod.Price
		if unitPriceOverride >= 0 {
			price = unitPriceOverride
		}
		ln = &Line{
			Key:       key,
			Name:      prod.Name,
			Category:  prod.Category,
			UnitPrice: price,
		}
		s.lines[key] = ln
		s.order = append(s.order, key)
	}

	ln.Quantity += qtyDelta
	if ln.Quantity <= 0 {
		s.remove(key)
	}
}

// RemoveLine deletes the entry unconditionally; no-op if absent.
func (s *Store) RemoveLine(key LineKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(key)
}

// SetQuantity sets the line's quantity. A target of zero or less removes the
// line instead. A bare quantity-set never creates a line.
func (s *Store) SetQuantity(key LineKey, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(key)
		return
	}
	if ln, ok := s.lines[key]; ok {
		ln.Quantity = quantity
	}
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[LineKey]*Line)
	s.order = nil
}

// Snapshot returns a copy of the current lines in insertion order plus the
// aggregate item count and raw total.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Lines: make([]Line, 0, len(s.order))}
	for _, key := range s.order {
		ln := s.lines[key]
		snap.Lines = append(snap.Lines, *ln)
		snap.ItemCount += ln.Quantity
		snap.RawTotal += ln.Subtotal()
	}
	return snap
}

// remove assumes the caller holds the lock.
func (s *Store) remove(key LineKey) {
	if _, ok := s.lines[key]; !ok {
		return
	}
	delete(s.lines, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
