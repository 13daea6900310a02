// Package audit registra acciones sensibles (cambios de password, bloqueos,
// barridos de sesiones) en el store y en el log estructurado. El registro
// nunca bloquea la operación principal: un fallo de auditoría se loguea y se
// sigue adelante.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// Acciones conocidas. Los handlers y el servicio de auth usan estas
// constantes, nunca strings sueltos.
const (
	ActionPasswordChanged  = "password.changed"
	ActionUserDisabled     = "user.disabled"
	ActionUserEnabled      = "user.enabled"
	ActionSessionsSwept    = "sessions.swept"
	ActionSessionsRevoked  = "sessions.revoked"
	ActionRoleAssigned     = "rbac.role_assigned"
	ActionRoleRevoked      = "rbac.role_revoked"
	ActionPermGranted      = "rbac.permission_granted"
	ActionPermRevoked      = "rbac.permission_revoked"
	ActionOrgSwitched      = "session.org_switched"
)

// NewEntry arma una entrada lista para insertar (con o sin transacción).
func NewEntry(userID, action string, detail map[string]any) *core.AuditEntry {
	return &core.AuditEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// Recorder persiste entradas de auditoría.
type Recorder struct {
	store core.AuditStore
}

func NewRecorder(store core.AuditStore) *Recorder {
	return &Recorder{store: store}
}

// Record inserta la entrada y la refleja en el log. userID puede venir vacío
// para acciones de sistema (ej: sweep desde el CLI).
func (r *Recorder) Record(ctx context.Context, userID, action string, detail map[string]any) {
	e := &core.AuditEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
	if r.store != nil {
		if err := r.store.InsertAudit(ctx, e); err != nil {
			logger.From(ctx).Warn("audit: insert falló",
				logger.Op(action), logger.Err(err))
		}
	}
	logger.From(ctx).Info("audit",
		logger.Op(action), logger.UserID(userID), logger.Any("detail", detail))
}
