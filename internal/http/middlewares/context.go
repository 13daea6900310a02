package middlewares

import (
	"context"

	"github.com/dropDatabas3/peoplehub/internal/auth"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeySession
)

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, rid)
}

// GetRequestID devuelve el request id del contexto ("" si no hay).
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return v
	}
	return ""
}

func setSession(ctx context.Context, s *auth.UserSession) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// GetSession devuelve la vista autenticada inyectada por WithSession.
// nil si el request no pasó por el middleware de sesión.
func GetSession(ctx context.Context) *auth.UserSession {
	if v, ok := ctx.Value(ctxKeySession).(*auth.UserSession); ok {
		return v
	}
	return nil
}
