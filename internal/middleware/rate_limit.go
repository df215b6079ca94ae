package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. It guards the public,
// unauthenticated routes (registration and Adotante self-service).
type RateLimiter struct {
	limiters      map[string]*rate.Limiter
	limitersMutex sync.Mutex

	rps            rate.Limit
	burst          int
	whitelistedIPs map[string]bool
}

func NewRateLimiter(rps float64, burst int, whitelist ...string) *RateLimiter {
	allowed := make(map[string]bool, len(whitelist))
	for _, ip := range whitelist {
		allowed[ip] = true
	}
	return &RateLimiter{
		limiters:       make(map[string]*rate.Limiter),
		rps:            rate.Limit(rps),
		burst:          burst,
		whitelistedIPs: allowed,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.limitersMutex.Lock()
	defer rl.limitersMutex.Unlock()

	if limiter, exists := rl.limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters[ip] = limiter
	return limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if rl.whitelistedIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			common.RespondError(w, time.Now(), nil, constants.MsgRateLimited, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
