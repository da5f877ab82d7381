package http

import (
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// RateLimitMiddleware charges cost tokens per request to the client IP.
func RateLimitMiddleware(limiter *RateLimiter, cost int, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			ok, retryAfter := limiter.Allow(ip, cost)
			if !ok {
				requestLogger(r, log).WithFields(logrus.Fields{
					"client_ip":   ip,
					"cost":        cost,
					"retry_after": retryAfter.String(),
				}).Warn("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
