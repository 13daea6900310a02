package auth

import (
	"context"
	"net/http"
	"strings"
)

// TokenFromRequest extrae el token: primero Authorization Bearer, después la
// cookie de sesión. Vacío si no viene por ninguno de los dos.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// VerifyFromRequest combina extracción y verificación.
func (s *Service) VerifyFromRequest(ctx context.Context, r *http.Request, cookieName string) (*UserSession, error) {
	raw := TokenFromRequest(r, cookieName)
	if raw == "" {
		return nil, ErrUnauthorized
	}
	return s.VerifyToken(ctx, raw)
}
