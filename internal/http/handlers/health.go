package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/cache"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
)

// NewHealthz: liveness plano, siempre 200 mientras el proceso responda.
func NewHealthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
}

type pinger interface {
	Ping(ctx context.Context) error
}

// NewReadyz verifica las dependencias reales: DB obligatoria, cache
// informativo (un redis caído degrada, no tumba el readiness).
func NewReadyz(db pinger, c cache.Cache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		deps := map[string]string{}
		status := http.StatusOK

		if err := db.Ping(ctx); err != nil {
			deps["database"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			deps["database"] = "ok"
		}

		if c != nil {
			if err := c.Ping(ctx); err != nil {
				deps["cache"] = "down"
			} else {
				deps["cache"] = "ok"
			}
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		httpx.WriteJSON(w, status, map[string]any{"status": state, "deps": deps})
	})
}
