package middleware

import (
	"hotel/shared/constant"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/rs/zerolog/log"
)

func parseProxies(cidrs []string) []netip.Prefix {
	proxies := make([]netip.Prefix, 0, len(cidrs))

	for _, raw := range cidrs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			addr, addrErr := netip.ParseAddr(raw)
			if addrErr != nil {
				log.Warn().Str("proxy", raw).Msg("ignoring malformed trusted proxy")

				continue
			}

			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}

		proxies = append(proxies, prefix.Masked())
	}

	return proxies
}

func (a *appMiddleware) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	addr = addr.Unmap()

	for _, prefix := range a.proxies {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

// RealIP replaces RemoteAddr with the client address reported by a trusted
// proxy. X-Forwarded-For is read right to left and the first hop outside the
// trusted set wins. Requests from any other peer keep their socket address.
func (a *appMiddleware) RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := a.forwardedFor(r); ip != "" {
			r.RemoteAddr = ip
		}

		next.ServeHTTP(w, r)
	})
}

func (a *appMiddleware) forwardedFor(r *http.Request) string {
	if !a.trusted(clientIP(r)) {
		return ""
	}

	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		hops := strings.Split(xff, ",")

		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if net.ParseIP(hop) == nil {
				return ""
			}

			if !a.trusted(hop) {
				return hop
			}
		}

		return ""
	}

	if xri := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); net.ParseIP(xri) != nil {
		return xri
	}

	return ""
}
