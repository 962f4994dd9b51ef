package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
	"github.com/stylehub/storefront/pkg/retry"
)

var _ port.CatalogBrowser = (*CatalogService)(nil)

// CatalogService serves read-only catalog views. Remote reads are
// side-effect free and retried once on failure.
type CatalogService struct {
	catalog port.CatalogReader
	reviews port.ReviewsReader

	// seq tags each browse request; a request that is no longer the
	// newest when it completes is discarded instead of being cached.
	seq    atomic.Uint64
	mu     sync.Mutex
	cached []domain.Product
}

func NewCatalogService(catalog port.CatalogReader, reviews port.ReviewsReader) *CatalogService {
	return &CatalogService{catalog: catalog, reviews: reviews}
}

// BrowseProducts fetches the active catalog, applies the facets and
// returns the ordered result. When a newer browse started while this
// one was in flight, the stale result is returned to its caller but
// not retained as the latest view.
func (s *CatalogService) BrowseProducts(
	ctx context.Context, f domain.FilterState,
) ([]domain.Product, error) {
	const op = "CatalogService.BrowseProducts"

	reqSeq := s.seq.Add(1)

	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	categories, err := s.readCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := ResolveFilter(products, categories, f)

	if s.seq.Load() == reqSeq {
		s.mu.Lock()
		s.cached = result
		s.mu.Unlock()
	} else {
		slog.Debug("discarding superseded browse result", "seq", reqSeq)
	}

	return result, nil
}

// LatestView returns the most recent non-superseded browse result.
func (s *CatalogService) LatestView() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := make([]domain.Product, len(s.cached))
	copy(view, s.cached)
	return view
}

// ProductDetail resolves a product by slug together with its approved
// reviews. A review-fetch failure is non-fatal: the product is
// returned with no reviews.
func (s *CatalogService) ProductDetail(
	ctx context.Context, slug string,
) (domain.Product, []domain.Review, error) {
	const op = "CatalogService.ProductDetail"

	product, err := s.catalog.ReadProductBySlug(ctx, slug)
	if err != nil {
		return domain.Product{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if !product.Active {
		return domain.Product{}, nil, fmt.Errorf(
			"%s: product %q is inactive: %w", op, slug, domain.ErrNotFound)
	}

	reviews, err := s.reviews.ReadApprovedReviews(ctx, product.ProductID)
	if err != nil {
		slog.Warn("failed to fetch reviews", "op", op, "slug", slug, "err", err)
		reviews = nil
	}

	return product, reviews, nil
}

// Categories returns the active categories in sort order.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogService.Categories"

	cs, err := s.readCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (s *CatalogService) readProducts(ctx context.Context) ([]domain.Product, error) {
	return retry.DoWithResult(ctx, remoteReadRetry(), func() ([]domain.Product, error) {
		return s.catalog.ReadProducts(ctx)
	})
}

func (s *CatalogService) readCategories(ctx context.Context) ([]domain.Category, error) {
	return retry.DoWithResult(ctx, remoteReadRetry(), func() ([]domain.Category, error) {
		return s.catalog.ReadCategories(ctx)
	})
}

// remoteReadRetry allows one extra attempt on remote failures only.
func remoteReadRetry() retry.RetryConfig {
	return retry.RetryConfig{
		MaxAttempts: 2,
		Backoff:     retry.LinearBackoff(100 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, domain.ErrRemote)
		},
	}
}
