package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stylehub/storefront/internal/core/port"
)

// GET /v1/wishlist (200 OK, 401, 503)
// POST /v1/wishlist JSON (201 Created, 400, 401, 404, 503)
// DELETE /v1/wishlist/{id} (200 OK, 401, 503)
// DELETE /v1/wishlist (200 OK, 401, 503)

type WishlistHandler struct {
	sessions port.CartSessionResolver
}

func RegisterWishlist(mux *http.ServeMux, sessions port.CartSessionResolver) {
	h := WishlistHandler{sessions}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist", h.PostEntry)
	mux.HandleFunc("DELETE /v1/wishlist/{id}", h.DeleteEntry)
	mux.HandleFunc("DELETE /v1/wishlist", h.DeleteWishlist)
}

func (h WishlistHandler) session(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (port.CartManager, bool) {
	mgr, err := h.sessions.Session(r.Context(), UserID(r))
	if err != nil {
		writeDomainErr(w, log, err)
		return nil, false
	}
	return mgr, true
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetWishlist"
	log := slog.With("op", op)

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	writeJSON(w, log, http.StatusOK, toWishlist(mgr.Wishlist()))
}

func (h WishlistHandler) PostEntry(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostEntry"
	log := slog.With("op", op)

	var body AddWishlistEntry
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	if err := mgr.AddToWishlist(r.Context(), body.ProductID); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusCreated, toWishlist(mgr.Wishlist()))
	log.Info("added to wishlist", "productID", body.ProductID)
}

func (h WishlistHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.DeleteEntry"
	log := slog.With("op", op)

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	if err := mgr.RemoveFromWishlist(r.Context(), r.PathValue("id")); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toWishlist(mgr.Wishlist()))
}

func (h WishlistHandler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.DeleteWishlist"
	log := slog.With("op", op)

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	if err := mgr.ClearWishlist(r.Context()); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toWishlist(mgr.Wishlist()))
}
