package domain

import (
	"sort"
	"time"
)

type (
	Product struct {
		ProductID      string
		Name           string
		Slug           string
		Description    string
		Price          float64
		CompareAtPrice float64
		Active         bool
		Featured       bool
		Sizes          []string
		Colors         []string
		StockQuantity  int
		TrackInventory bool
		CategoryID     string
		Images         []ProductImage
		CreatedAt      time.Time
	}

	ProductImage struct {
		URL          string
		Alt          string
		Primary      bool
		DisplayOrder int
	}

	Category struct {
		CategoryID string
		Name       string
		Slug       string
		SortOrder  int
		Active     bool
	}
)

// OnSale reports whether the compare-at price is set above the
// current price.
func (p Product) OnSale() bool {
	return p.CompareAtPrice > p.Price
}

// RequiresSize reports whether a size must be chosen before the
// product can be added to a cart.
func (p Product) RequiresSize() bool {
	return len(p.Sizes) > 0
}

func (p Product) RequiresColor() bool {
	return len(p.Colors) > 0
}

// PrimaryImage returns the image flagged as primary, or the first
// image by display order when none is flagged.
func (p Product) PrimaryImage() (ProductImage, bool) {
	if len(p.Images) == 0 {
		return ProductImage{}, false
	}
	first := p.Images[0]
	for _, img := range p.Images {
		if img.Primary {
			return img, true
		}
		if img.DisplayOrder < first.DisplayOrder {
			first = img
		}
	}
	return first, true
}

// SortedImages returns the product images ordered by display order.
func (p Product) SortedImages() []ProductImage {
	imgs := make([]ProductImage, len(p.Images))
	copy(imgs, p.Images)
	sort.SliceStable(imgs, func(i, j int) bool {
		return imgs[i].DisplayOrder < imgs[j].DisplayOrder
	})
	return imgs
}
