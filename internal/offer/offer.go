// Package offer computes the bulk-discount promotion over a cart snapshot:
// buy 3 get 1 free, buy 5 get 2 free, buy 10 get 5 free, expressed as group
// sizes (pay 3 of 4, pay 5 of 7, pay 10 of 15).
package offer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/betichouu-bot/Poster-Point/internal/cart"
)

// Tier is one bulk bracket: every complete group of GroupSize units grants
// FreeCount free units.
type Tier struct {
	GroupSize int `json:"groupSize" mapstructure:"group_size" validate:"gt=0"`
	FreeCount int `json:"freeCount" mapstructure:"free_count" validate:"gt=0"`
}

// DefaultTiers matches the shop's advertised offers, largest bracket first.
func DefaultTiers() []Tier {
	return []Tier{
		{GroupSize: 15, FreeCount: 5}, // buy 10 get 5 free
		{GroupSize: 7, FreeCount: 2},  // buy 5 get 2 free
		{GroupSize: 4, FreeCount: 1},  // buy 3 get 1 free
	}
}

// Result reports whether the promotion applies and what it is worth.
type Result struct {
	Applied   bool   `json:"applied"`
	FreeUnits int    `json:"freeUnits"`
	Discount  int    `json:"discount"`
	Message   string `json:"message,omitempty"`
}

// Engine evaluates the tier table against cart lines. Construct with
// NewEngine so a zero or misordered group size can never reach Compute.
type Engine struct {
	tiers []Tier
}

// NewEngine validates the tier table: positive group sizes and free counts,
// strictly descending group sizes. Ordering matters because Compute fills
// brackets greedily from the largest tier down.
func NewEngine(tiers []Tier) (*Engine, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("offer: empty tier table")
	}
	for i, t := range tiers {
		if t.GroupSize <= 0 {
			return nil, fmt.Errorf("offer: tier %d has non-positive group size %d", i, t.GroupSize)
		}
		if t.FreeCount <= 0 {
			return nil, fmt.Errorf("offer: tier %d has non-positive free count %d", i, t.FreeCount)
		}
		if i > 0 && t.GroupSize >= tiers[i-1].GroupSize {
			return nil, fmt.Errorf("offer: tiers must be strictly descending by group size, got %d after %d", t.GroupSize, tiers[i-1].GroupSize)
		}
	}
	cp := make([]Tier, len(tiers))
	copy(cp, tiers)
	return &Engine{tiers: cp}, nil
}

// Tiers returns the validated tier table, largest group first.
func (e *Engine) Tiers() []Tier {
	cp := make([]Tier, len(e.tiers))
	copy(cp, e.tiers)
	return cp
}

// Compute pools quantity across all lines (offers are cart-wide, mixed
// categories included) and decomposes it greedily over the tiers, largest
// bracket first. This decomposition is intentionally greedy rather than
// revenue-optimal; customers see these exact amounts. The cheapest units are
// the free ones, so the discount can never exceed what the shopper owes.
func (e *Engine) Compute(lines []cart.Line) Result {
	if len(lines) == 0 {
		return Result{}
	}

	totalQty := 0
	for _, ln := range lines {
		totalQty += ln.Quantity
	}
	if totalQty <= 0 {
		return Result{}
	}

	remaining := totalQty
	freeUnits := 0
	for _, t := range e.tiers {
		groups := remaining / t.GroupSize
		if groups > 0 {
			freeUnits += groups * t.FreeCount
			remaining -= groups * t.GroupSize
		}
	}
	if freeUnits == 0 {
		return Result{}
	}

	// one entry per unit, line order preserved for equal prices
	unitPrices := make([]int, 0, totalQty)
	for _, ln := range lines {
		for i := 0; i < ln.Quantity; i++ {
			unitPrices = append(unitPrices, ln.UnitPrice)
		}
	}
	sort.SliceStable(unitPrices, func(i, j int) bool { return unitPrices[i] < unitPrices[j] })

	if freeUnits > len(unitPrices) {
		freeUnits = len(unitPrices)
	}
	discount := 0
	for _, p := range unitPrices[:freeUnits] {
		discount += p
	}

	return Result{
		Applied:   true,
		FreeUnits: freeUnits,
		Discount:  discount,
		Message:   scopeMessage(lines),
	}
}

// scopeMessage names the category when the whole cart shares one, otherwise
// the top-level type of the first line.
func scopeMessage(lines []cart.Line) string {
	first := strings.ToUpper(lines[0].Category)
	uniform := true
	for _, ln := range lines[1:] {
		if strings.ToUpper(ln.Category) != first {
			uniform = false
			break
		}
	}
	if uniform {
		return first + " offer applied"
	}
	return topLevelType(lines[0].Category) + " offer applied"
}

// topLevelType maps a manifest category to the type name shown in the UI.
func topLevelType(category string) string {
	c := strings.ToUpper(category)
	switch {
	case c == "SPLIT POSTERS":
		return "Split Posters"
	case c == "BOOKMARK" || c == "BOOKMARKS":
		return "Bookmarks"
	case c == "FULLPAGE" || c == "SINGLE STICKERS" || strings.Contains(c, "STICKER"):
		return "Stickers"
	default:
		return "Posters"
	}
}
