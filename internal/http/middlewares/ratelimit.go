package middlewares

import (
	"net/http"
	"strconv"

	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
	"github.com/dropDatabas3/peoplehub/internal/rate"
)

// WithRateLimit aplica ventana fija por IP de cliente. Si el limiter falla
// (redis caído) el request pasa: preferimos degradar a dejar a todos afuera.
func WithRateLimit(limiter rate.Limiter, scope string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}
			res, err := limiter.Allow(r.Context(), scope+":"+clientIP(r))
			if err != nil {
				logger.From(r.Context()).Warn("ratelimit: allow falló", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			if !res.Allowed {
				if res.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				}
				httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "demasiados intentos, espera un momento")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
