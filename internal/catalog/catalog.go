// Package catalog derives the storefront's product lists from the image
// manifest: posters per category, split posters, stickers and bookmarks,
// with placeholder fallbacks when a category has no artwork yet. The
// catalog is read-only once built; the cart copies fields off it and never
// mutates it.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Top-level product types shown in the sidebar.
const (
	TypePosters      = "Posters"
	TypeSplitPosters = "Split Posters"
	TypeBookmarks    = "Bookmarks"
	TypeStickers     = "Stickers"
)

func Types() []string {
	return []string{TypePosters, TypeSplitPosters, TypeBookmarks, TypeStickers}
}

const (
	basePosterPrice      = 39
	singleStickerPrice   = 9
	fullPageStickerPrice = 99
	bookmarkPrice        = 20

	fullPageKey      = "FULLPAGE"
	singleStickerKey = "SINGLE STICKERS"
	bookmarkKey      = "BOOKMARK"
	splitPosterKey   = "SPLIT POSTERS"

	placeholderFile = "images/placeholder.jpg"
)

// SizeOption is one selectable print size with its unit price.
type SizeOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int    `json:"price"`
}

func PosterSizes() []SizeOption {
	return []SizeOption{
		{ID: "A4", Label: "A4", Price: 39},
		{ID: "A3", Label: "A3", Price: 69},
		{ID: "A5", Label: "A5", Price: 25},
		{ID: "Pocket", Label: "Pocket", Price: 10},
		{ID: "4x6", Label: "4*6 inch", Price: 19},
	}
}

// SplitPosterSizes carries the triptych premium on A4 and A3.
func SplitPosterSizes() []SizeOption {
	return []SizeOption{
		{ID: "A4", Label: "A4", Price: 159},
		{ID: "A3", Label: "A3", Price: 259},
		{ID: "A5", Label: "A5", Price: 25},
		{ID: "Pocket", Label: "Pocket", Price: 10},
		{ID: "4x6", Label: "4*6 inch", Price: 19},
	}
}

// Product is one display record derived from the manifest.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	File        string `json:"file"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Loaded      bool   `json:"loaded"`
}

// CategoryCount is a sidebar entry.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Catalog holds the derived product lists grouped the way the storefront
// browses them.
type Catalog struct {
	posters   []Product // includes split posters
	stickers  []Product
	bookmarks []Product
}

// Build normalizes the manifest and derives all product groups.
func Build(m Manifest, logf func(format string, v ...any)) *Catalog {
	m = m.Normalize(DefaultCategories(), logf)

	c := &Catalog{}
	c.buildPosters(m, logf)
	c.buildStickers(m)
	c.buildBookmarks(m)
	return c
}

func (c *Catalog) buildPosters(m Manifest, logf func(format string, v ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	seen := make(map[string]bool)
	for _, cat := range DefaultCategories() {
		if cat == fullPageKey || cat == singleStickerKey || cat == bookmarkKey {
			continue
		}
		for idx, fname := range m[cat] {
			file := imagePath(cat, fname)
			canonical := canonicalPath(file)
			if seen[canonical] {
				logf("catalog: skipping duplicate poster %s in %s", fname, cat)
				continue
			}
			seen[canonical] = true

			name := deriveTitle(fname, cat, idx)
			if name == "" {
				name = fallbackTitle(cat, idx)
			}

			typ := TypePosters
			if cat == splitPosterKey {
				typ = TypeSplitPosters
			}
			c.posters = append(c.posters, Product{
				ID:       slug(cat) + "-" + fmt.Sprint(idx+1),
				Name:     name,
				Price:    basePosterPrice,
				Category: cat,
				Type:     typ,
				File:     file,
			})
		}
	}
}

func (c *Catalog) buildStickers(m Manifest) {
	if files := m[singleStickerKey]; len(files) > 0 {
		for idx, fname := range files {
			name := deriveTitle(fname, singleStickerKey, idx)
			if name == "" {
				name = "Sticker #" + padIndex3(idx+1)
			}
			c.stickers = append(c.stickers, Product{
				ID:       "single-sticker-" + padIndex3(idx+1),
				Name:     name,
				Price:    singleStickerPrice,
				Category: singleStickerKey,
				Type:     TypeStickers,
				File:     imagePath(singleStickerKey, fname),
			})
		}
	} else {
		c.stickers = append(c.stickers, placeholders(30, "single-sticker-", "Sticker #", singleStickerPrice, singleStickerKey, TypeStickers)...)
	}

	if files := m[fullPageKey]; len(files) > 0 {
		for idx, fname := range files {
			name := deriveTitle(fname, fullPageKey, idx)
			if name == "" {
				name = "FULLPAGE #" + padIndex3(idx+1)
			}
			c.stickers = append(c.stickers, Product{
				ID:       "fullpage-sticker-" + padIndex3(idx+1),
				Name:     name,
				Price:    fullPageStickerPrice,
				Category: fullPageKey,
				Type:     TypeStickers,
				File:     imagePath(fullPageKey, fname),
			})
		}
	} else {
		c.stickers = append(c.stickers, placeholders(10, "fullpage-sticker-", "FULLPAGE #", fullPageStickerPrice, fullPageKey, TypeStickers)...)
	}
}

func (c *Catalog) buildBookmarks(m Manifest) {
	files := m[bookmarkKey]
	if len(files) == 0 {
		c.bookmarks = placeholders(12, "bookmark-", "Bookmark #", bookmarkPrice, bookmarkKey, TypeBookmarks)
		return
	}
	for idx, fname := range files {
		name := deriveTitle(fname, bookmarkKey, idx)
		if name == "" {
			name = "Bookmark #" + padIndex3(idx+1)
		}
		c.bookmarks = append(c.bookmarks, Product{
			ID:       "bookmark-" + padIndex3(idx+1),
			Name:     name,
			Price:    bookmarkPrice,
			Category: bookmarkKey,
			Type:     TypeBookmarks,
			File:     imagePath(bookmarkKey, fname),
		})
	}
}

func placeholders(count int, idPrefix, namePrefix string, price int, category, typ string) []Product {
	out := make([]Product, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Product{
			ID:          idPrefix + padIndex3(i+1),
			Name:        namePrefix + padIndex3(i+1),
			Price:       price,
			Category:    category,
			Type:        typ,
			File:        placeholderFile,
			Placeholder: true,
		})
	}
	return out
}

// Find resolves a product id across all groups.
func (c *Catalog) Find(id string) (Product, bool) {
	for _, group := range [][]Product{c.posters, c.stickers, c.bookmarks} {
		for _, p := range group {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Product{}, false
}

// NormalizeVariant substitutes the default size for an empty variant on
// sized product types, so posters always carry a concrete size in their
// cart line key. Variant-less products stay at "".
func (c *Catalog) NormalizeVariant(p Product, variant string) string {
	if variant != "" {
		return variant
	}
	switch p.Type {
	case TypePosters:
		return PosterSizes()[0].ID
	case TypeSplitPosters:
		return SplitPosterSizes()[0].ID
	}
	return ""
}

// PriceFor resolves the unit price for a product at the given variant.
// Posters and split posters price by size; stickers and bookmarks have no
// variants and price by product. Unknown variants report ok=false.
func (c *Catalog) PriceFor(p Product, variant string) (int, bool) {
	var sizes []SizeOption
	switch p.Type {
	case TypePosters:
		sizes = PosterSizes()
	case TypeSplitPosters:
		sizes = SplitPosterSizes()
	default:
		if variant == "" {
			return p.Price, true
		}
		return 0, false
	}

	if variant == "" {
		variant = sizes[0].ID
	}
	for _, s := range sizes {
		if s.ID == variant {
			return s.Price, true
		}
	}
	return 0, false
}

// Filter returns the products for a type selection, optionally narrowed by
// subcategory (case-insensitive) and a search term over name and category.
func (c *Catalog) Filter(typ, subcat, search string) []Product {
	var res []Product
	switch typ {
	case TypeSplitPosters:
		// subcategory is ignored for this special type
		for _, p := range c.posters {
			if p.Category == splitPosterKey {
				res = append(res, p)
			}
		}
	case TypePosters:
		for _, p := range c.posters {
			if p.Category == splitPosterKey {
				continue
			}
			if subcat != "" && !strings.EqualFold(p.Category, subcat) {
				continue
			}
			res = append(res, p)
		}
	case TypeBookmarks:
		for _, p := range c.bookmarks {
			if subcat != "" && !strings.EqualFold(p.Category, subcat) {
				continue
			}
			res = append(res, p)
		}
	case TypeStickers:
		for _, p := range c.stickers {
			if subcat != "" && !strings.EqualFold(p.Category, subcat) {
				continue
			}
			res = append(res, p)
		}
	}

	if search != "" {
		term := strings.ToLower(strings.TrimSpace(search))
		filtered := res[:0]
		for _, p := range res {
			if strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Category), term) {
				filtered = append(filtered, p)
			}
		}
		res = filtered
	}
	return res
}

// Categories lists the sidebar entries for a type, poster categories sorted
// by name as the storefront shows them.
func (c *Catalog) Categories(typ string) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	add := func(cat string) {
		if _, ok := counts[cat]; !ok {
			order = append(order, cat)
		}
		counts[cat]++
	}

	switch typ {
	case TypePosters:
		for _, p := range c.posters {
			if p.Category != splitPosterKey {
				add(p.Category)
			}
		}
		sort.Strings(order)
	case TypeSplitPosters:
		for _, p := range c.posters {
			if p.Category == splitPosterKey {
				add(p.Category)
			}
		}
	case TypeBookmarks:
		for _, p := range c.bookmarks {
			add(p.Category)
		}
	case TypeStickers:
		for _, p := range c.stickers {
			add(p.Category)
		}
	}

	out := make([]CategoryCount, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryCount{Name: cat, Count: counts[cat]})
	}
	return out
}

// Checker reports whether an image file is actually resolvable. Probe
// failures only affect ordering, never product existence.
type Checker interface {
	Check(ctx context.Context, file string) bool
}

// Validate probes every non-placeholder product and reorders each group so
// resolvable artwork lists first. Order within each half is preserved.
func (c *Catalog) Validate(ctx context.Context, checker Checker) {
	for _, group := range []*[]Product{&c.posters, &c.stickers, &c.bookmarks} {
		markLoaded(ctx, checker, *group)
		sort.SliceStable(*group, func(i, j int) bool {
			return (*group)[i].Loaded && !(*group)[j].Loaded
		})
	}
}

func slug(category string) string {
	return strings.ReplaceAll(strings.ToLower(category), " ", "-")
}

// imagePath keeps manifest entries that are already relative paths as-is
// and builds the escaped images directory path for bare filenames.
func imagePath(category, fname string) string {
	if strings.Contains(fname, "/") {
		return fname
	}
	return "images/" + url.PathEscape("PINTEREST IMAGES") + "/" + url.PathEscape(category) + "/" + url.PathEscape(fname)
}

// canonicalPath normalizes a file path for duplicate detection.
func canonicalPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if dec, err := url.PathUnescape(p); err == nil {
		p = dec
	}
	return strings.ToLower(p)
}
