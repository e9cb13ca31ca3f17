package http

import (
	"net"
	"net/http"

	"github.com/avelez-dev/stock-locator/internal/http/ban"
	rl "github.com/avelez-dev/stock-locator/internal/http/rate_limiter"
)

// RateLimitMiddleware applies the per-IP token bucket and the redis-backed
// strike/ban bookkeeping on top of it. It wraps the whole router in main so
// handler tests run without it.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if ban.IsBanned(ip) {
			writeError(w, http.StatusTooManyRequests, "temporarily banned")
			return
		}

		if !rl.GetVisitor(ip).Allow() {
			ban.RegisterStrike(ip, r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
