package middleware

import (
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// RateLimit counts requests per client IP and user agent in a Redis fixed
// window. A Redis failure lets the request through.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.config.App.RateLimiter.Enable {
			next.ServeHTTP(w, r)

			return
		}

		maxReqs := a.config.App.RateLimiter.MaxRequests
		windowSecs := a.config.App.RateLimiter.WindowSeconds

		cacheKey := shared.BuildCacheKey(constant.RateLimitPrefix, clientIP(r), userAgent(r))

		count, err := a.cache.Increment(r.Context(), cacheKey, time.Duration(windowSecs)*time.Second)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("rate limiter unavailable, allowing request")

			next.ServeHTTP(w, r)

			return
		}

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(maxReqs)-count), 10))
		w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

		if count > int64(maxReqs) {
			w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(windowSecs))
			response.WithRequestLimitExceeded(w)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func userAgent(r *http.Request) string {
	ua := r.UserAgent()
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

// clientIP is the peer address. Forwarding headers only reach it through
// RealIP, which rewrites RemoteAddr for trusted proxies.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
