package handlers

import (
	"net/http"

	"github.com/dropDatabas3/peoplehub/internal/audit"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
	"github.com/dropDatabas3/peoplehub/internal/http/middlewares"
	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// NewAdminSessionsSweep maneja POST /v1/admin/sessions/sweep: borra las
// sesiones vencidas. Pensado para invocarse desde el CLI o un cron.
func NewAdminSessionsSweep(repo core.SessionStore, recorder *audit.Recorder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, err := repo.DeleteExpiredSessions(r.Context())
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error barriendo sesiones")
			return
		}
		if n > 0 {
			logger.From(r.Context()).Info("sweep: sesiones vencidas borradas", logger.Count64(n))
		}
		if recorder != nil {
			actor := ""
			if view := middlewares.GetSession(r.Context()); view != nil {
				actor = view.ID
			}
			recorder.Record(r.Context(), actor, audit.ActionSessionsSwept, map[string]any{"deleted": n})
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted": n})
	})
}
