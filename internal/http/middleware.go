package http

import (
	"net"
	"net/http"

	"github.com/castello-soft/stock-ledger/internal/auth"
	rl "github.com/castello-soft/stock-ledger/internal/http/rate_limiter"
)

// AuthMiddleware rejects requests without a valid bearer token. Handlers that
// need the claims re-read them from the Authorization header.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := auth.TokenClaims(r.Header.Get("Authorization")); err != nil {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware throttles by client IP. Applied to the credential
// endpoints only.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
