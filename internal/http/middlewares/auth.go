package middlewares

import (
	"errors"
	"net/http"

	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
)

// WithSession exige una sesión viva: verifica token (Bearer o cookie),
// cruza contra la fila de sesión y deja la vista resuelta en el contexto.
// Cada paso por acá corre la ventana de expiración.
func WithSession(svc *auth.Service, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			view, err := svc.VerifyFromRequest(r.Context(), r, cookieName)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "sesión inválida o vencida")
					return
				}
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error verificando la sesión")
				return
			}
			next.ServeHTTP(w, r.WithContext(setSession(r.Context(), view)))
		})
	}
}

// RequirePermission corta con 403 si la vista de sesión no trae la key. El
// body nunca nombra el permiso que faltó.
func RequirePermission(svc *auth.Service, key string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			view := GetSession(r.Context())
			if view == nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "sesión requerida")
				return
			}
			if view.HasPermission(key) {
				next.ServeHTTP(w, r)
				return
			}
			// sin el permiso en el org activo queda el override global
			super, err := svc.IsSuperAdmin(r.Context(), view.ID)
			if err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "error resolviendo permisos")
				return
			}
			if !super {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "no autorizado para esta operación")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
