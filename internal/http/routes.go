// Package http arma el router y el server del servicio.
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/peoplehub/internal/audit"
	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/cache"
	"github.com/dropDatabas3/peoplehub/internal/directory"
	"github.com/dropDatabas3/peoplehub/internal/http/handlers"
	"github.com/dropDatabas3/peoplehub/internal/http/middlewares"
	"github.com/dropDatabas3/peoplehub/internal/rate"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// Deps es todo lo que el router necesita cableado desde main.
type Deps struct {
	Auth     *auth.Service
	Repo     core.Repository
	Cache    cache.Cache
	Catalog  *directory.Catalog
	Recorder *audit.Recorder
	Limiter  rate.Limiter
	Metrics  *Metrics
	Cookie   handlers.CookieConfig
}

// Permisos que guardan las rutas admin.
const (
	permUsersManage   = "users:manage"
	permSessionsSweep = "sessions:sweep"
	permRBACManage    = "rbac:manage"
)

func NewRouter(d Deps) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.WithRequestID())
	r.Use(d.Metrics.WithMetrics())
	r.Use(middlewares.WithLogging())

	// públicas
	r.Method(stdhttp.MethodGet, "/healthz", handlers.NewHealthz())
	r.Method(stdhttp.MethodGet, "/readyz", handlers.NewReadyz(d.Repo, d.Cache))
	r.Method(stdhttp.MethodGet, "/metrics", d.Metrics.Handler())

	r.Method(stdhttp.MethodPost, "/v1/auth/login", middlewares.Chain(
		handlers.NewLogin(d.Auth, d.Cookie, d.Metrics.RecordLogin),
		middlewares.WithRateLimit(d.Limiter, "login"),
	))
	r.Method(stdhttp.MethodPost, "/v1/auth/logout", handlers.NewLogout(d.Auth, d.Cookie))

	// con sesión
	session := middlewares.WithSession(d.Auth, d.Cookie.Name)
	r.Group(func(r chi.Router) {
		r.Use(session)
		r.Method(stdhttp.MethodGet, "/v1/me", handlers.NewMe())
		r.Method(stdhttp.MethodPost, "/v1/auth/switch-organization", handlers.NewSwitchOrganization(d.Auth, d.Cookie))
		r.Method(stdhttp.MethodPost, "/v1/auth/password", handlers.NewChangePassword(d.Auth, d.Cookie.Name))
	})

	// admin: sesión + permiso
	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(session)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequirePermission(d.Auth, permSessionsSweep))
			r.Method(stdhttp.MethodPost, "/sessions/sweep", handlers.NewAdminSessionsSweep(d.Repo, d.Recorder))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequirePermission(d.Auth, permUsersManage))
			r.Method(stdhttp.MethodPost, "/users/{id}/disable", handlers.NewAdminUserActive(d.Repo, d.Recorder, d.Catalog, false))
			r.Method(stdhttp.MethodPost, "/users/{id}/enable", handlers.NewAdminUserActive(d.Repo, d.Recorder, d.Catalog, true))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequirePermission(d.Auth, permRBACManage))
			rbac := handlers.NewRBACAdmin(d.Repo, d.Recorder)
			r.Post("/rbac/roles/assign", rbac.AssignRole)
			r.Post("/rbac/roles/revoke", rbac.RevokeRole)
			r.Post("/rbac/roles/permissions", rbac.AddRolePermissions)
			r.Post("/rbac/permissions/grant", rbac.GrantPermission)
			r.Post("/rbac/permissions/revoke", rbac.RevokePermission)
			r.Get("/rbac/users/{id}/grants", rbac.UserGrants)
		})
	})

	return r
}
