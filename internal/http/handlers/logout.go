package handlers

import (
	"net/http"

	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
)

// NewLogout maneja POST /v1/auth/logout. Siempre 200: sin token, con token
// vencido o ya deslogueado da lo mismo, la cookie se borra igual.
func NewLogout(svc *auth.Service, ck CookieConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := auth.TokenFromRequest(r, ck.Name)
		if err := svc.Logout(r.Context(), raw); err != nil {
			// el borrado falló pero el cliente igual pierde la cookie
			logger.From(r.Context()).Warn("logout: borrado de sesión falló", logger.Err(err))
		}
		http.SetCookie(w, BuildDeletionCookie(ck))
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
}
