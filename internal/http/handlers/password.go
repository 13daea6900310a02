package handlers

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
)

// NewChangePassword maneja POST /v1/auth/password. Requiere sesión viva y la
// password vigente; de paso revoca las demás sesiones del usuario.
func NewChangePassword(svc *auth.Service, cookieName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if !httpx.ReadJSON(w, r, &in) {
			return
		}
		if in.CurrentPassword == "" || in.NewPassword == "" {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "current_password y new_password son obligatorios")
			return
		}

		raw := auth.TokenFromRequest(r, cookieName)
		err := svc.ChangePassword(r.Context(), raw, in.CurrentPassword, in.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnauthorized):
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "sesión inválida o vencida")
			case errors.Is(err, auth.ErrInvalidCredentials):
				httpx.WriteError(w, http.StatusForbidden, "invalid_password", "la contraseña actual no coincide")
			case errors.Is(err, auth.ErrWeakPassword):
				httpx.WriteError(w, http.StatusBadRequest, "weak_password", "la contraseña nueva es demasiado corta")
			default:
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error cambiando la contraseña")
			}
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
}
