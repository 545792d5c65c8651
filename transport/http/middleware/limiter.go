package middleware

import (
	"bilateral/shared"
	"bilateral/shared/constant"
	"bilateral/transport/http/response"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client in fixed redis windows. When redis is unreachable
// the request is let through.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	if !limiter.Enable {
		return next
	}

	window := time.Duration(limiter.WindowSeconds) * time.Second

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

		count, err := a.counter.Increment(r.Context(), cacheKey, window)
		if err != nil {
			next.ServeHTTP(w, r)

			return
		}

		if count > int64(limiter.MaxRequests) {
			response.WithRequestLimitExceeded(w)

			return
		}

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limiter.MaxRequests)-count), 10))
		w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

		next.ServeHTTP(w, r)
	})
}

func userAgent(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
