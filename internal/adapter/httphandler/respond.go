package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stylehub/storefront/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeDomainErr(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, "invalid request", http.StatusBadRequest)
		log.Warn("rejected request", "err", err)
	case errors.Is(err, domain.ErrAuthRequired):
		http.Error(w, "sign-in required", http.StatusUnauthorized)
		log.Warn("anonymous request", "err", err)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		log.Warn("not found", "err", err)
	case errors.Is(err, domain.ErrRemote):
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		log.Error("remote store failure", "err", err)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected failure", "err", err)
	}
}
