package httphandler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

// GET /v1/products?search=&category=&price_min=&price_max=&size=&color=&featured=&sort= (200 OK, 503)
// GET /v1/products/{slug} (200 OK, 404, 503)
// GET /v1/categories (200 OK, 503)

type CatalogHandler struct {
	browser port.CatalogBrowser
}

func RegisterCatalog(mux *http.ServeMux, browser port.CatalogBrowser) {
	h := CatalogHandler{browser}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	f := filterFromQuery(r)

	products, err := h.browser.BrowseProducts(r.Context(), f)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toProducts(products))
	log.Info("served product list", "nProducts", len(products))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	slug := r.PathValue("slug")

	product, reviews, err := h.browser.ProductDetail(r.Context(), slug)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	detail := ProductDetail{Product: toProduct(product)}
	var ratingSum int
	for _, rv := range reviews {
		detail.Reviews = append(detail.Reviews, Review{
			ReviewID:  rv.ReviewID,
			Rating:    rv.Rating,
			Title:     rv.Title,
			Comment:   rv.Comment,
			CreatedAt: rv.CreatedAt,
		})
		ratingSum += rv.Rating
	}
	if len(reviews) > 0 {
		detail.AverageRating = float64(ratingSum) / float64(len(reviews))
	}

	writeJSON(w, log, http.StatusOK, detail)
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	cs, err := h.browser.Categories(r.Context())
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	out := make([]Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category{
			CategoryID: c.CategoryID,
			Name:       c.Name,
			Slug:       c.Slug,
			SortOrder:  c.SortOrder,
		})
	}

	writeJSON(w, log, http.StatusOK, out)
}

// filterFromQuery never rejects input: unparsable numbers keep the
// default range and unknown sorts fall back during normalization.
func filterFromQuery(r *http.Request) domain.FilterState {
	q := r.URL.Query()
	f := domain.DefaultFilter()

	f.Search = q.Get("search")
	f.Categories = q["category"]
	f.Sizes = q["size"]
	f.Colors = q["color"]
	f.Sort = domain.SortKey(q.Get("sort"))

	if v, err := strconv.ParseFloat(q.Get("price_min"), 64); err == nil {
		f.PriceMin = v
	}
	if v, err := strconv.ParseFloat(q.Get("price_max"), 64); err == nil {
		f.PriceMax = v
	}
	if v, err := strconv.ParseBool(q.Get("featured")); err == nil {
		f.Featured = v
	}

	return f
}
