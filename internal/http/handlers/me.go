package handlers

import (
	"net/http"

	"github.com/dropDatabas3/peoplehub/internal/http/httpx"
	"github.com/dropDatabas3/peoplehub/internal/http/middlewares"
)

// NewMe maneja GET /v1/me: devuelve la vista que el middleware de sesión ya
// resolvió (grants frescos, organización activa).
func NewMe() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view := middlewares.GetSession(r.Context())
		if view == nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "sesión requerida")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, view)
	})
}
