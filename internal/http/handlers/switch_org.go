package handlers

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// NewSwitchOrganization maneja POST /v1/auth/switch-organization. Opera
// sobre la sesión viva: mismo token, organización nueva, cookie renovada.
func NewSwitchOrganization(svc *auth.Service, ck CookieConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			OrganizationID string `json:"organization_id"`
		}
		if !httpx.ReadJSON(w, r, &in) {
			return
		}
		if in.OrganizationID == "" {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "organization_id es obligatorio")
			return
		}

		raw := auth.TokenFromRequest(r, ck.Name)
		view, err := svc.SwitchOrganization(r.Context(), raw, in.OrganizationID)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnauthorized):
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "sesión inválida o vencida")
			case errors.Is(err, auth.ErrForbidden):
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "no autorizado para esa organización")
			case errors.Is(err, core.ErrInvalid):
				httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "organization_id es obligatorio")
			default:
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error cambiando de organización")
			}
			return
		}

		// renovar la cookie: el touch ya corrió la ventana en el servidor
		http.SetCookie(w, BuildSessionCookie(ck, raw))
		httpx.WriteJSON(w, http.StatusOK, view)
	})
}
