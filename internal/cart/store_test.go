package cart

import "testing"

type fakeFinder struct {
	products map[string]Product
}

func (f *fakeFinder) FindProduct(id string) (Product, bool) {
	p, ok := f.products[id]
	return p, ok
}

func newTestStore() *Store {
	return NewStore(&fakeFinder{products: map[string]Product{
		"anime-1":          {ID: "anime-1", Name: "ANIME #001", Category: "ANIME", Price: 39},
		"marvel-2":         {ID: "marvel-2", Name: "MARVEL #002", Category: "MARVEL", Price: 39},
		"single-sticker-1": {ID: "single-sticker-1", Name: "Sticker #001", Category: "Single Stickers", Price: 9},
	}})
}

func TestAddLineAccumulatesOnOneLine(t *testing.T) {
	s := newTestStore()

	s.AddLine("anime-1", 1, "A4", NoPriceOverride)
	s.AddLine("anime-1", 2, "A4", NoPriceOverride)

	snap := s.Snapshot()
	if len(snap.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", snap.Lines[0].Quantity)
	}
	if snap.RawTotal != 3*39 {
		t.Fatalf("expected raw total 117, got %d", snap.RawTotal)
	}
}

func TestAddLineVariantsAreDistinctLines(t *testing.T) {
	s := newTestStore()

	s.AddLine("anime-1", 1, "A4", 39)
	s.AddLine("anime-1", 1, "A3", 69)

	snap := s.Snapshot()
	if len(snap.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snap.Lines))
	}
	if snap.Lines[0].UnitPrice != 39 || snap.Lines[1].UnitPrice != 69 {
		t.Fatalf("unexpected unit prices: %d, %d", snap.Lines[0].UnitPrice, snap.Lines[1].UnitPrice)
	}
}

func TestAddLineUnknownProductIsNoOp(t *testing.T) {
	s := newTestStore()

	s.AddLine("ghost-99", 1, "A4", NoPriceOverride)

	snap := s.Snapshot()
	if len(snap.Lines) != 0 || snap.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", snap)
	}
}

func TestAddLineNonPositiveDeltaOnFreshLine(t *testing.T) {
	s := newTestStore()

	s.AddLine("anime-1", 0, "A4", NoPriceOverride)
	s.AddLine("marvel-2", -1, "", NoPriceOverride)

	snap := s.Snapshot()
	if len(snap.Lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(snap.Lines))
	}
}

func TestUnitPriceLockedAtCreation(t *testing.T) {
	s := newTestStore()

	s.AddLine("anime-1", 1, "A5", 25)
	// later adds for the same key must not touch the locked-in price
	s.AddLine("anime-1", 1, "A5", 69)

	snap := s.Snapshot()
	if len(snap.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snap.Lines))
	}
	if snap.Lines[0].UnitPrice != 25 {
		t.Fatalf("expected unit price 25, got %d", snap.Lines[0].UnitPrice)
	}
	if snap.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", snap.Lines[0].Quantity)
	}
}

func TestSetQuantity(t *testing.T) {
	t.Run("updates existing line", func(t *testing.T) {
		s := newTestStore()
		s.AddLine("anime-1", 1, "A4", NoPriceOverride)

		s.SetQuantity(LineKey{ProductID: "anime-1", Variant: "A4"}, 5)

		snap := s.Snapshot()
		if snap.Lines[0].Quantity != 5 {
			t.Fatalf("expected quantity 5, got %d", snap.Lines[0].Quantity)
		}
	})

	t.Run("zero or negative removes the line", func(t *testing.T) {
		for _, qty := range []int{0, -3} {
			s := newTestStore()
			s.AddLine("anime-1", 2, "A4", NoPriceOverride)

			s.SetQuantity(LineKey{ProductID: "anime-1", Variant: "A4"}, qty)

			if snap := s.Snapshot(); len(snap.Lines) != 0 {
				t.Fatalf("quantity %d: expected line removed, got %d lines", qty, len(snap.Lines))
			}
		}
	})

	t.Run("never creates a line", func(t *testing.T) {
		s := newTestStore()

		s.SetQuantity(LineKey{ProductID: "anime-1", Variant: "A4"}, 3)

		if snap := s.Snapshot(); len(snap.Lines) != 0 {
			t.Fatalf("expected no lines, got %d", len(snap.Lines))
		}
	})
}

func TestRemoveLineAbsentKeyIsNoOp(t *testing.T) {
	s := newTestStore()
	s.AddLine("anime-1", 1, "A4", NoPriceOverride)

	s.RemoveLine(LineKey{ProductID: "anime-1", Variant: "A3"})

	if snap := s.Snapshot(); len(snap.Lines) != 1 {
		t.Fatalf("expected the A4 line to survive, got %d lines", len(snap.Lines))
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := newTestStore()
	s.AddLine("anime-1", 4, "A4", NoPriceOverride)
	s.AddLine("single-sticker-1", 2, "", NoPriceOverride)

	s.Clear()
	s.Clear()

	snap := s.Snapshot()
	if len(snap.Lines) != 0 || snap.ItemCount != 0 || snap.RawTotal != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestSnapshotKeepsInsertionOrder(t *testing.T) {
	s := newTestStore()
	s.AddLine("marvel-2", 1, "A4", NoPriceOverride)
	s.AddLine("anime-1", 1, "A4", NoPriceOverride)
	s.AddLine("single-sticker-1", 1, "", NoPriceOverride)

	// removing and re-adding moves the key to the back
	s.RemoveLine(LineKey{ProductID: "anime-1", Variant: "A4"})
	s.AddLine("anime-1", 1, "A4", NoPriceOverride)

	snap := s.Snapshot()
	got := []string{}
	for _, ln := range snap.Lines {
		got = append(got, ln.Key.ProductID)
	}
	want := []string{"marvel-2", "single-sticker-1", "anime-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
