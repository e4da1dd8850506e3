package middleware

import (
	"hotel/config"
	"hotel/shared/failure"
	"hotel/transport/http/response"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	errTooManyLogins = "Too many login attempts. Try again later"

	throttleIdleTTL       = 15 * time.Minute
	throttleSweepInterval = time.Minute
	defaultLoginBurst     = 5
)

// Throttle guards credential endpoints with a token bucket per client IP.
type Throttle interface {
	Login(next http.Handler) http.Handler
}

type visitor struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

type throttleImpl struct {
	visitors  sync.Map
	limit     rate.Limit
	burst     int
	now       func() time.Time
	sweepMu   sync.Mutex
	lastSweep time.Time
}

func NewThrottle(cfg *config.Config) Throttle {
	return newThrottle(cfg, time.Now)
}

func newThrottle(cfg *config.Config, now func() time.Time) *throttleImpl {
	burst := cfg.App.LoginThrottle.Burst
	if burst <= 0 {
		burst = defaultLoginBurst
	}

	return &throttleImpl{
		limit:     rate.Limit(cfg.App.LoginThrottle.RequestsPerMinute / 60),
		burst:     burst,
		now:       now,
		lastSweep: now(),
	}
}

func (t *throttleImpl) Login(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if !t.allow(ip) {
			log.Warn().Str("ip", ip).Msg("login throttled")

			response.WithError(w, failure.TooManyRequests(errTooManyLogins))

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (t *throttleImpl) allow(key string) bool {
	now := t.now()

	t.sweep(now)

	v, _ := t.visitors.LoadOrStore(key, &visitor{limiter: rate.NewLimiter(t.limit, t.burst)})

	vis, ok := v.(*visitor)
	if !ok {
		return true
	}

	vis.mu.Lock()
	vis.lastSeen = now
	vis.mu.Unlock()

	return vis.limiter.AllowN(now, 1)
}

// sweep drops visitors idle for longer than throttleIdleTTL, at most once per
// throttleSweepInterval.
func (t *throttleImpl) sweep(now time.Time) {
	t.sweepMu.Lock()
	if now.Sub(t.lastSweep) < throttleSweepInterval {
		t.sweepMu.Unlock()

		return
	}

	t.lastSweep = now
	t.sweepMu.Unlock()

	t.visitors.Range(func(key, value any) bool {
		vis, ok := value.(*visitor)
		if !ok {
			t.visitors.Delete(key)

			return true
		}

		vis.mu.Lock()
		idle := now.Sub(vis.lastSeen) > throttleIdleTTL
		vis.mu.Unlock()

		if idle {
			t.visitors.Delete(key)
		}

		return true
	})
}
