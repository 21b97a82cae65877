package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testManifest() Manifest {
	return Manifest{
		"ANIME":           {"AN-001.jpg", "AN-002.jpg"},
		"MOVIE POSTERS":   {"cover.jpg"},
		"SPLIT POSTERS":   {"outputs/SPLIT POSTERS/sp_001_triptych.jpg"},
		"SINGLE STICKERS": {"ST-007.png"},
		"FULLPAGE":        {"fullsheet1.png"},
		"BOOKMARK":        {"BM-003.png"},
	}
}

func TestNormalizeDropsInvalidCategories(t *testing.T) {
	var warnings []string
	logf := func(format string, v ...any) { warnings = append(warnings, format) }

	m := Manifest{
		"ANIME":    {"a.jpg"},
		"CARS":     {},
		"UNLISTED": {"x.jpg"},
	}
	out := m.Normalize(DefaultCategories(), logf)

	require.Equal(t, Manifest{"ANIME": {"a.jpg"}}, out)
	require.Len(t, warnings, 2)
}

func TestBuildPosters(t *testing.T) {
	c := Build(testManifest(), nil)

	anime := c.Filter(TypePosters, "ANIME", "")
	require.Len(t, anime, 2)
	require.Equal(t, "anime-1", anime[0].ID)
	require.Equal(t, "AN-001", anime[0].Name, "title derived from filename")
	require.Equal(t, 39, anime[0].Price)
	require.Equal(t, "images/PINTEREST%20IMAGES/ANIME/AN-001.jpg", anime[0].File)

	movies := c.Filter(TypePosters, "MOVIE POSTERS", "")
	require.Len(t, movies, 1)
	require.Equal(t, "MP-001", movies[0].Name, "movie posters fall back to MP index names")
}

func TestBuildSplitPostersAreTheirOwnType(t *testing.T) {
	c := Build(testManifest(), nil)

	split := c.Filter(TypeSplitPosters, "", "")
	require.Len(t, split, 1)
	require.Equal(t, "SPLIT POSTERS", split[0].Category)
	require.Equal(t, "outputs/SPLIT POSTERS/sp_001_triptych.jpg", split[0].File,
		"manifest entries that are already paths are kept as-is")

	for _, p := range c.Filter(TypePosters, "", "") {
		require.NotEqual(t, "SPLIT POSTERS", p.Category, "split posters excluded from the posters view")
	}
}

func TestBuildDeduplicatesPosterFiles(t *testing.T) {
	m := Manifest{"ANIME": {"AN-001.jpg", "AN-001.jpg"}}
	c := Build(m, nil)

	require.Len(t, c.Filter(TypePosters, "ANIME", ""), 1)
}

func TestBuildStickersAndBookmarks(t *testing.T) {
	c := Build(testManifest(), nil)

	stickers := c.Filter(TypeStickers, "", "")
	require.Len(t, stickers, 2)
	require.Equal(t, "single-sticker-001", stickers[0].ID)
	require.Equal(t, 9, stickers[0].Price)
	require.Equal(t, "fullpage-sticker-001", stickers[1].ID)
	require.Equal(t, 99, stickers[1].Price)

	bookmarks := c.Filter(TypeBookmarks, "", "")
	require.Len(t, bookmarks, 1)
	require.Equal(t, "bookmark-001", bookmarks[0].ID)
	require.Equal(t, "BM-003", bookmarks[0].Name)
	require.Equal(t, 20, bookmarks[0].Price)
}

func TestBuildPlaceholderFallbacks(t *testing.T) {
	c := Build(Manifest{"ANIME": {"a1.jpg"}}, nil)

	stickers := c.Filter(TypeStickers, "SINGLE STICKERS", "")
	require.Len(t, stickers, 30)
	require.True(t, stickers[0].Placeholder)
	require.Equal(t, "Sticker #001", stickers[0].Name)

	fullpage := c.Filter(TypeStickers, "FULLPAGE", "")
	require.Len(t, fullpage, 10)

	bookmarks := c.Filter(TypeBookmarks, "", "")
	require.Len(t, bookmarks, 12)
	require.True(t, bookmarks[0].Placeholder)
}

func TestFilterSearch(t *testing.T) {
	c := Build(testManifest(), nil)

	require.Len(t, c.Filter(TypePosters, "", "an-001"), 1)
	require.Len(t, c.Filter(TypePosters, "", "anime"), 2, "search matches category too")
	require.Empty(t, c.Filter(TypePosters, "", "nothing-here"))
}

func TestFilterSubcategoryIsCaseInsensitive(t *testing.T) {
	c := Build(testManifest(), nil)

	require.Len(t, c.Filter(TypePosters, "anime", ""), 2)
}

func TestFind(t *testing.T) {
	c := Build(testManifest(), nil)

	p, ok := c.Find("fullpage-sticker-001")
	require.True(t, ok)
	require.Equal(t, "FULLPAGE", p.Category)

	_, ok = c.Find("ghost-1")
	require.False(t, ok)
}

func TestPriceFor(t *testing.T) {
	c := Build(testManifest(), nil)

	poster, ok := c.Find("anime-1")
	require.True(t, ok)

	price, ok := c.PriceFor(poster, "A3")
	require.True(t, ok)
	require.Equal(t, 69, price)

	price, ok = c.PriceFor(poster, "")
	require.True(t, ok)
	require.Equal(t, 39, price, "empty variant defaults to A4")

	_, ok = c.PriceFor(poster, "A7")
	require.False(t, ok)

	split, ok := c.Find("split-posters-1")
	require.True(t, ok)
	price, ok = c.PriceFor(split, "A3")
	require.True(t, ok)
	require.Equal(t, 259, price)

	sticker, ok := c.Find("single-sticker-001")
	require.True(t, ok)
	price, ok = c.PriceFor(sticker, "")
	require.True(t, ok)
	require.Equal(t, 9, price)

	_, ok = c.PriceFor(sticker, "A4")
	require.False(t, ok, "stickers have no size variants")
}

func TestNormalizeVariant(t *testing.T) {
	c := Build(testManifest(), nil)

	poster, ok := c.Find("anime-1")
	require.True(t, ok)
	require.Equal(t, "A4", c.NormalizeVariant(poster, ""), "empty poster variant becomes the default size")
	require.Equal(t, "A3", c.NormalizeVariant(poster, "A3"))

	split, ok := c.Find("split-posters-1")
	require.True(t, ok)
	require.Equal(t, "A4", c.NormalizeVariant(split, ""))

	sticker, ok := c.Find("single-sticker-001")
	require.True(t, ok)
	require.Equal(t, "", c.NormalizeVariant(sticker, ""), "variant-less products stay without a variant")
}

func TestCategories(t *testing.T) {
	c := Build(testManifest(), nil)

	cats := c.Categories(TypePosters)
	require.Equal(t, []CategoryCount{
		{Name: "ANIME", Count: 2},
		{Name: "MOVIE POSTERS", Count: 1},
	}, cats)

	stickerCats := c.Categories(TypeStickers)
	require.Equal(t, []CategoryCount{
		{Name: "SINGLE STICKERS", Count: 1},
		{Name: "FULLPAGE", Count: 1},
	}, stickerCats)
}

func TestDeriveTitle(t *testing.T) {
	tests := map[string]struct {
		fname string
		cat   string
		idx   int
		want  string
	}{
		"prefix dash number":    {fname: "MP-053.jpg", cat: "MOVIE POSTERS", want: "MP-053"},
		"prefix underscore":     {fname: "sp_012_triptych.jpg", cat: "SPLIT POSTERS", want: "SP-012"},
		"prefix no separator":   {fname: "MOT012.png", cat: "DEVOTIONAL", want: "MOT-012"},
		"leading zeros":         {fname: "AN-0007.jpg", cat: "ANIME", want: "AN-007"},
		"trailing number only":  {fname: "poster42.jpg", cat: "ANIME", idx: 4, want: "ANIME #005"},
		"trailing number movie": {fname: "movie scan 0042.jpg", cat: "MOVIE POSTERS", idx: 0, want: "MP-001"},
		"no pattern":            {fname: "cover.jpg", cat: "ANIME", want: ""},
		"empty":                 {fname: "", cat: "ANIME", want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, deriveTitle(tc.fname, tc.cat, tc.idx))
		})
	}
}
