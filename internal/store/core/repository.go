package core

import (
	"context"
	"time"
)

// UserStore lee/escribe credenciales.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)

	// UpdatePasswordHash escribe el hash nuevo y el registro de auditoría en
	// la misma transacción.
	UpdatePasswordHash(ctx context.Context, userID, newHash string, audit *AuditEntry) error

	SetUserActive(ctx context.Context, userID string, active bool) error
}

// OrganizationStore resuelve organizaciones y membresías.
type OrganizationStore interface {
	GetOrganization(ctx context.Context, orgID string) (*Organization, error)

	// ListUserOrganizations devuelve las organizaciones activas donde el
	// usuario tiene membresía activa, ordenadas por joined_at.
	ListUserOrganizations(ctx context.Context, userID string) ([]Organization, error)

	HasMembership(ctx context.Context, userID, orgID string) (bool, error)
}

// RBACStore resuelve y muta grants. La resolución es siempre relativa a una
// organización; sets vacíos son resultados válidos.
type RBACStore interface {
	// ResolvePermissions: unión de grants directos y derivados de roles,
	// ambos filtrados por organization_id y active.
	ResolvePermissions(ctx context.Context, userID, orgID string) ([]string, error)

	// ResolveRoles: nombres de roles activos del usuario en la organización.
	ResolveRoles(ctx context.Context, userID, orgID string) ([]string, error)

	// HasRoleAnywhere reporta si el usuario tiene un rol con ese nombre en
	// alguna organización (asignación activa). Usado para Super Admin.
	HasRoleAnywhere(ctx context.Context, userID, roleName string) (bool, error)

	AssignRole(ctx context.Context, userID, orgID, roleName string) error
	RevokeRole(ctx context.Context, userID, orgID, roleName string) error
	GrantPermission(ctx context.Context, userID, orgID, permKey string) error
	RevokePermission(ctx context.Context, userID, orgID, permKey string) error
	AddRolePermissions(ctx context.Context, orgID, roleName string, permKeys []string) error
}

// SessionStore persiste sesiones. La fila con expires_at > now es la única
// fuente de verdad de "este token sigue logueado".
type SessionStore interface {
	CreateSession(ctx context.Context, tokenHash, userID, orgID string, ttl time.Duration) (*Session, error)
	GetSessionByToken(ctx context.Context, tokenHash string) (*Session, error)

	// TouchSession corre expires_at a now+ttl y actualiza last_activity.
	TouchSession(ctx context.Context, tokenHash string, ttl time.Duration) error

	// ReassignOrganization cambia la organización activa de la sesión (y la toca).
	ReassignOrganization(ctx context.Context, tokenHash, orgID string, ttl time.Duration) error

	// DeleteSessionByToken es idempotente: borrar lo inexistente no es error.
	DeleteSessionByToken(ctx context.Context, tokenHash string) error
	DeleteSessionsForUser(ctx context.Context, userID string) (int64, error)

	// DeleteOtherSessionsForUser borra todas las sesiones del usuario salvo
	// la indicada. Usado en cambio de password.
	DeleteOtherSessionsForUser(ctx context.Context, userID, keepTokenHash string) (int64, error)
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

type AuditStore interface {
	InsertAudit(ctx context.Context, e *AuditEntry) error
}

// Repository agrupa todos los stores. La implementación pg la satisface con
// un pool inyectado (nada de singletons globales).
type Repository interface {
	UserStore
	OrganizationStore
	RBACStore
	SessionStore
	AuditStore

	Ping(ctx context.Context) error
	Close()
}
