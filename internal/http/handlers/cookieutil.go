package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
)

// CookieConfig agrupa lo que hace falta para emitir/borrar la cookie de
// sesión de forma consistente en login, switch y logout.
type CookieConfig struct {
	Name     string
	Domain   string
	SameSite string
	Secure   bool
	TTL      time.Duration
}

// parseSameSite convierte el string de config a http.SameSite. Valor
// desconocido loguea y cae a Lax.
func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		logger.L().Warn("cookie: samesite desconocido, usando lax", logger.Any("value", s))
		return http.SameSiteLaxMode
	}
}

// BuildSessionCookie arma la cookie de sesión con flags seguros: HttpOnly
// siempre, Path=/, Secure y SameSite según config, Expires/MaxAge = TTL.
func BuildSessionCookie(cfg CookieConfig, value string) *http.Cookie {
	c := &http.Cookie{
		Name:     cfg.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: parseSameSite(cfg.SameSite),
		Expires:  time.Now().UTC().Add(cfg.TTL),
		MaxAge:   int(cfg.TTL.Seconds()),
	}
	if cfg.Domain != "" {
		c.Domain = cfg.Domain
	}
	return c
}

// BuildDeletionCookie arma la cookie de borrado (logout): Expires en el
// pasado y MaxAge -1 con los mismos flags, para que el user-agent la pise.
func BuildDeletionCookie(cfg CookieConfig) *http.Cookie {
	c := &http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: parseSameSite(cfg.SameSite),
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
	if cfg.Domain != "" {
		c.Domain = cfg.Domain
	}
	return c
}
