package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/peoplehub/internal/audit"
	"github.com/dropDatabas3/peoplehub/internal/directory"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
	"github.com/dropDatabas3/peoplehub/internal/http/middlewares"
	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// NewAdminUserActive maneja POST /v1/admin/users/{id}/disable y /enable.
// El disable además revoca todas las sesiones del usuario: bloquear a
// alguien lo saca al tiro, no en el próximo login.
func NewAdminUserActive(repo core.Repository, recorder *audit.Recorder, catalog *directory.Catalog, active bool) http.Handler {
	action := audit.ActionUserDisabled
	if active {
		action = audit.ActionUserEnabled
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "id")
		if userID == "" {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "falta el id de usuario")
			return
		}

		if err := repo.SetUserActive(r.Context(), userID, active); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httpx.WriteError(w, http.StatusNotFound, "not_found", "usuario no existe")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error actualizando el usuario")
			return
		}

		var revoked int64
		if !active {
			n, err := repo.DeleteSessionsForUser(r.Context(), userID)
			if err != nil {
				logger.From(r.Context()).Warn("disable: revocación de sesiones falló",
					logger.UserID(userID), logger.Err(err))
			}
			revoked = n
		}
		if catalog != nil {
			catalog.Invalidate(r.Context(), userID)
		}

		if recorder != nil {
			actor := ""
			if view := middlewares.GetSession(r.Context()); view != nil {
				actor = view.ID
			}
			recorder.Record(r.Context(), actor, action, map[string]any{
				"target_user_id": userID,
				"sessions_revoked": revoked,
			})
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"ok":               true,
			"active":           active,
			"sessions_revoked": revoked,
		})
	})
}
