package main

import (
	"errors"
	"log/slog"
	"net/http"

	"asset-proxy-d/internal/catalog"
	"asset-proxy-d/internal/objstore"
	"asset-proxy-d/internal/token"

	"golang.org/x/time/rate"
)

// errStoreUnavailable means no object-store client is configured; the
// asset may exist but its bytes are unreachable.
var errStoreUnavailable = errors.New("object store unavailable")

// withError maps a handler's error to its terminal status. Bodies stay
// minimal; detail goes to the log only. An undecodable token, a missing
// asset and a failed upstream fetch are all indistinguishable 404s to the
// caller.
func withError(fn func(w http.ResponseWriter, r *http.Request) error) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, token.ErrInvalidToken),
			errors.Is(err, catalog.ErrNotFound),
			errors.Is(err, objstore.ErrFetchFailed):
			http.Error(w, "Not found", http.StatusNotFound)
		case errors.Is(err, errStoreUnavailable):
			http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		default:
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

// withLimit rejects requests beyond the limiter's rate. A nil limiter
// disables limiting.
func withLimit(l *rate.Limiter, next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
