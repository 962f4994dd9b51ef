package service

import (
	"slices"
	"sort"
	"strings"

	"github.com/stylehub/storefront/internal/core/domain"
)

// ResolveFilter applies the user-selected facets to the catalog and
// returns the matching products in a deterministic order. Pure
// function of its inputs: same catalog and filter always yield the
// same ordered result.
func ResolveFilter(
	catalog []domain.Product,
	categories []domain.Category,
	f domain.FilterState,
) []domain.Product {
	f = f.Normalize()

	categoryIDs := resolveCategoryIDs(categories, f.Categories)

	var out []domain.Product
	for _, p := range catalog {
		if !matchesSearch(p, f.Search) {
			continue
		}
		if len(categoryIDs) > 0 && !slices.Contains(categoryIDs, p.CategoryID) {
			continue
		}
		if f.Featured && !p.Featured {
			continue
		}
		if p.Price < f.PriceMin || p.Price > f.PriceMax {
			continue
		}
		if !intersects(p.Sizes, f.Sizes) || !intersects(p.Colors, f.Colors) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.Sort)
	return out
}

// resolveCategoryIDs maps selected slugs to category identifiers.
// Slugs that resolve to nothing are ignored; when no selected slug
// resolves, the category facet imposes no constraint.
func resolveCategoryIDs(categories []domain.Category, slugs []string) []string {
	var ids []string
	for _, c := range categories {
		if slices.Contains(slugs, c.Slug) {
			ids = append(ids, c.CategoryID)
		}
	}
	return ids
}

func matchesSearch(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// intersects reports whether the option list shares an element with
// the selected set. An empty selection imposes no constraint; a
// product with no options never matches a non-empty selection.
func intersects(options, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if slices.Contains(options, s) {
			return true
		}
	}
	return false
}

// sortProducts orders by the requested key, breaking ties by product
// id so pagination and tests stay reproducible.
func sortProducts(ps []domain.Product, key domain.SortKey) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		switch key {
		case domain.SortPriceAsc:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case domain.SortPriceDesc:
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case domain.SortNameAsc:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		default: // newest first
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ProductID < b.ProductID
	})
}
