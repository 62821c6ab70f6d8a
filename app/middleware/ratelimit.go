package middleware

import (
	"net"
	"net/http"

	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"
)

// routeClientVary buckets requests by route and client IP (port stripped, so
// one client cannot dodge the limit by reconnecting).
type routeClientVary struct{}

func (routeClientVary) Key(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return r.URL.Path + "\n" + host
}

// RateLimit builds a GCRA rate limiter allowing perMin requests per minute
// (plus burst) per route+client pair. Denied requests get a 429 with the
// usual error body.
func RateLimit(perMin, burst int) (func(http.Handler) http.Handler, error) {
	store, err := memstore.New(65536)
	if err != nil {
		return nil, err
	}
	quota := throttled.RateQuota{MaxRate: throttled.PerMin(perMin), MaxBurst: burst}
	limiter, err := throttled.NewGCRARateLimiter(store, quota)
	if err != nil {
		return nil, err
	}
	httpLimiter := throttled.HTTPRateLimiter{
		RateLimiter: limiter,
		VaryBy:      routeClientVary{},
		DeniedHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again later")
		}),
	}
	return httpLimiter.RateLimit, nil
}
