package handlers

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
)

// NewLogin maneja POST /v1/auth/login. Con una sola membresía (o
// organization_id explícito) entrega token + cookie; con varias devuelve el
// selector de organizaciones sin crear sesión. onResult alimenta la métrica
// de logins y puede venir nil.
func NewLogin(svc *auth.Service, ck CookieConfig, onResult func(result string)) http.Handler {
	record := func(result string) {
		if onResult != nil {
			onResult(result)
		}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in auth.LoginInput
		if !httpx.ReadJSON(w, r, &in) {
			record("bad_request")
			return
		}

		res, err := svc.Login(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidInput):
				record("bad_request")
				httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "faltan email o password")
			case errors.Is(err, auth.ErrInvalidCredentials):
				record("invalid_credentials")
				httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "credenciales inválidas")
			case errors.Is(err, auth.ErrForbidden):
				record("forbidden")
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "no autorizado para esa organización")
			default:
				record("error")
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error procesando el login")
			}
			return
		}

		if res.RequiresOrganizationSelection {
			record("org_selection")
			httpx.WriteJSON(w, http.StatusOK, res)
			return
		}

		record("ok")
		http.SetCookie(w, BuildSessionCookie(ck, res.Token))
		httpx.WriteJSON(w, http.StatusOK, res)
	})
}
