package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stylehub/storefront/internal/core/port"
)

// GET /v1/cart (200 OK, 401, 503)
// POST /v1/cart/items JSON (201 Created, 400, 401, 404, 503)
// PATCH /v1/cart/items/{id} JSON (200 OK, 400, 401, 404, 503)
// DELETE /v1/cart/items/{id} (200 OK, 401, 503)
// DELETE /v1/cart (200 OK, 401, 503)

type CartHandler struct {
	sessions port.CartSessionResolver
}

func RegisterCart(mux *http.ServeMux, sessions port.CartSessionResolver) {
	h := CartHandler{sessions}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

// session resolves the caller's state manager or writes the error.
func (h CartHandler) session(
	w http.ResponseWriter, r *http.Request, log *slog.Logger,
) (port.CartManager, bool) {
	mgr, err := h.sessions.Session(r.Context(), UserID(r))
	if err != nil {
		writeDomainErr(w, log, err)
		return nil, false
	}
	return mgr, true
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	writeJSON(w, log, http.StatusOK, toCartSnapshot(mgr.Snapshot()))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	// an omitted quantity means one unit
	body := AddCartItem{Quantity: 1}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	err := mgr.AddToCart(
		r.Context(), body.ProductID, body.Size, body.Color, body.Quantity,
	)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusCreated, toCartSnapshot(mgr.Snapshot()))
	log.Info("added to cart", "productID", body.ProductID, "quantity", body.Quantity)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var body UpdateCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	itemID := r.PathValue("id")
	if err := mgr.UpdateQuantity(r.Context(), itemID, body.Quantity); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toCartSnapshot(mgr.Snapshot()))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	if err := mgr.RemoveFromCart(r.Context(), r.PathValue("id")); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toCartSnapshot(mgr.Snapshot()))
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	mgr, ok := h.session(w, r, log)
	if !ok {
		return
	}

	if err := mgr.ClearCart(r.Context()); err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toCartSnapshot(mgr.Snapshot()))
	log.Info("cleared cart", "userID", UserID(r))
}
