package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylehub/storefront/internal/core/domain"
)

func testCatalog() []domain.Product {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Product{
		{
			ProductID: "p1", Name: "Linen Shirt", Slug: "linen-shirt",
			Description: "breathable summer shirt",
			Price:       45, Active: true, CategoryID: "c-tops",
			Sizes: []string{"S", "M", "L"}, Colors: []string{"white", "blue"},
			CreatedAt: base.Add(3 * 24 * time.Hour),
		},
		{
			ProductID: "p2", Name: "Denim Jacket", Slug: "denim-jacket",
			Description: "classic jacket",
			Price:       120, Active: true, Featured: true, CategoryID: "c-outer",
			Sizes: []string{"M", "L"}, Colors: []string{"blue"},
			CreatedAt: base.Add(2 * 24 * time.Hour),
		},
		{
			ProductID: "p3", Name: "Canvas Tote", Slug: "canvas-tote",
			Description: "everyday bag",
			Price:       25, Active: true, CategoryID: "c-bags",
			CreatedAt: base.Add(1 * 24 * time.Hour),
		},
		{
			ProductID: "p4", Name: "Wool Scarf", Slug: "wool-scarf",
			Description: "warm winter scarf",
			Price:       25, Active: true, CategoryID: "c-acc",
			Colors:    []string{"grey"},
			CreatedAt: base,
		},
	}
}

func testCategories() []domain.Category {
	return []domain.Category{
		{CategoryID: "c-tops", Name: "Tops", Slug: "tops", SortOrder: 1, Active: true},
		{CategoryID: "c-outer", Name: "Outerwear", Slug: "outerwear", SortOrder: 2, Active: true},
		{CategoryID: "c-bags", Name: "Bags", Slug: "bags", SortOrder: 3, Active: true},
		{CategoryID: "c-acc", Name: "Accessories", Slug: "accessories", SortOrder: 4, Active: true},
	}
}

func productIDs(ps []domain.Product) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ProductID)
	}
	return ids
}

func TestResolveFilter(t *testing.T) {
	catalog := testCatalog()
	categories := testCategories()

	t.Run("DefaultReturnsAllNewestFirst", func(t *testing.T) {
		got := ResolveFilter(catalog, categories, domain.DefaultFilter())
		assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, productIDs(got))
	})

	t.Run("Deterministic", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sort = domain.SortPriceAsc

		first := ResolveFilter(catalog, categories, f)
		second := ResolveFilter(catalog, categories, f)
		assert.Equal(t, productIDs(first), productIDs(second))
	})

	t.Run("SearchMatchesNameAndDescription", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Search = "JACKET"
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p2"}, productIDs(got))

		f.Search = "everyday"
		got = ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p3"}, productIDs(got))
	})

	t.Run("PriceBoundsInclusive", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.PriceMin = 25
		f.PriceMax = 45
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p1", "p3", "p4"}, productIDs(got))
	})

	t.Run("InvertedPriceRangeRepaired", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.PriceMin = 45
		f.PriceMax = 25
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p1", "p3", "p4"}, productIDs(got))
	})

	t.Run("CategorySlugResolution", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Categories = []string{"tops", "bags"}
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p1", "p3"}, productIDs(got))
	})

	t.Run("UnresolvableSlugIgnored", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Categories = []string{"tops", "no-such-category"}
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p1"}, productIDs(got))
	})

	t.Run("OnlyUnresolvableSlugsImposeNoConstraint", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Categories = []string{"no-such-category"}
		got := ResolveFilter(catalog, categories, f)
		assert.Len(t, got, len(catalog))
	})

	t.Run("FeaturedOnly", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Featured = true
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p2"}, productIDs(got))
	})

	t.Run("SizeSelection", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sizes = []string{"S"}
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p1"}, productIDs(got))
	})

	t.Run("NoOptionsNeverMatchesSelection", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Colors = []string{"grey"}
		got := ResolveFilter(catalog, categories, f)
		// p3 has no color options and must not match
		assert.Equal(t, []string{"p4"}, productIDs(got))
	})

	t.Run("SortPriceAscTiebreakByID", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sort = domain.SortPriceAsc
		got := ResolveFilter(catalog, categories, f)
		require.Len(t, got, 4)
		// p3 and p4 share a price; p3 wins on id
		assert.Equal(t, []string{"p3", "p4", "p1", "p2"}, productIDs(got))
	})

	t.Run("SortPriceDesc", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sort = domain.SortPriceDesc
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p2", "p1", "p3", "p4"}, productIDs(got))
	})

	t.Run("SortNameAsc", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sort = domain.SortNameAsc
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p3", "p2", "p1", "p4"}, productIDs(got))
	})

	t.Run("UnknownSortFallsBackToNewest", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.Sort = domain.SortKey("rating")
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, productIDs(got))
	})

	t.Run("CombinedFacets", func(t *testing.T) {
		f := domain.DefaultFilter()
		f.PriceMin = 0
		f.PriceMax = 50
		f.Colors = []string{"blue"}
		got := ResolveFilter(catalog, categories, f)
		assert.Equal(t, []string{"p1"}, productIDs(got))
	})
}
