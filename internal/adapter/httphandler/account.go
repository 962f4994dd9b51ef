package httphandler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/internal/core/port"
)

// GET /v1/dashboard (200 OK, 401, 503)
// POST /v1/checkout (200 OK, 400, 401, 503)
// POST /v1/signout (204 No content)
// GET /v1/trending/{productID} (200 OK, 503)

type DashboardProvider interface {
	Summary(ctx context.Context, userID string, cart port.CartManager) (domain.DashboardSummary, error)
	TrendingCount(productID string) (int64, error)
}

type CheckoutProvider interface {
	Quote(ctx context.Context, userID string, cart port.CartManager) (domain.Totals, error)
}

type AccountHandler struct {
	sessions  port.CartSessionResolver
	dashboard DashboardProvider
	checkout  CheckoutProvider
}

func RegisterAccount(
	mux *http.ServeMux,
	sessions port.CartSessionResolver,
	dashboard DashboardProvider,
	checkout CheckoutProvider,
) {
	h := AccountHandler{sessions, dashboard, checkout}
	mux.HandleFunc("GET /v1/dashboard", h.GetDashboard)
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
	mux.HandleFunc("POST /v1/signout", h.PostSignout)
	mux.HandleFunc("GET /v1/trending/{productID}", h.GetTrending)
}

func (h AccountHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.GetDashboard"
	log := slog.With("op", op)

	userID := UserID(r)

	mgr, err := h.sessions.Session(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), userID, mgr)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	out := DashboardSummary{
		RecentOrders:  make([]Order, 0, len(summary.RecentOrders)),
		OrderCount:    summary.OrderCount,
		TotalSpent:    summary.TotalSpent,
		CartCount:     summary.CartCount,
		WishlistCount: summary.WishlistCount,
	}
	for _, o := range summary.RecentOrders {
		out.RecentOrders = append(out.RecentOrders, Order{
			OrderID:     o.OrderID,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
			CreatedAt:   o.CreatedAt,
		})
	}

	writeJSON(w, log, http.StatusOK, out)
}

func (h AccountHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.PostCheckout"
	log := slog.With("op", op)

	userID := UserID(r)

	mgr, err := h.sessions.Session(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	totals, err := h.checkout.Quote(r.Context(), userID, mgr)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, Totals{
		Subtotal: totals.Subtotal.StringFixed(2),
		Tax:      totals.Tax.StringFixed(2),
		Shipping: totals.Shipping.StringFixed(2),
		Total:    totals.Total.StringFixed(2),
	})
	log.Info("quoted checkout", "userID", userID)
}

// PostSignout ends the caller's cart session and purges its local
// state. Signing out an absent session is a no-op.
func (h AccountHandler) PostSignout(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.PostSignout"
	log := slog.With("op", op)

	userID := UserID(r)
	if userID != "" {
		h.sessions.EndSession(userID)
		log.Info("ended session", "userID", userID)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h AccountHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	const op = "AccountHandler.GetTrending"
	log := slog.With("op", op)

	productID := r.PathValue("productID")

	n, err := h.dashboard.TrendingCount(productID)
	if err != nil {
		writeDomainErr(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, TrendingCount{
		ProductID: productID,
		AddCount:  n,
	})
}
