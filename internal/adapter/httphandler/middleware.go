package httphandler

import (
	"context"
	"net/http"
)

const userIDHeader = "X-User-ID"

type ctxKey int

const userIDKey ctxKey = iota

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// Identity copies the identity header into the request context. The
// header is trusted: authentication happens at the edge proxy.
func Identity(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(userIDHeader); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, id))
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// UserID returns the identity set by the Identity middleware, empty
// for anonymous requests.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
