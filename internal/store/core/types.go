package core

import "time"

// User es la identidad con credenciales. Nunca se borra fuerte: Active=false.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Avatar       *string   `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Organization es el límite de tenant. Roles, permisos y membresías cuelgan de acá.
type Organization struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	RUT       *string    `json:"rut,omitempty"`
	Logo      *string    `json:"logo,omitempty"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Membership vincula usuario y organización. El set de membresías activas
// es exactamente lo que ofrece el selector de organización en el login.
type Membership struct {
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	JoinedAt       time.Time `json:"joined_at"`
	Active         bool      `json:"active"`
}

// Role es un bundle de permisos con alcance de una organización.
type Role struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
}

// Permission pertenece al catálogo global. Los grants (user_permission,
// role_permission) son los que llevan organization_id.
type Permission struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

// Session es el registro server-side que ata un token firmado a un usuario y
// su organización activa. TokenHash = sha256(token) en base64url; el token
// crudo nunca se persiste. OrganizationID vacío = login sin membresías.
type Session struct {
	TokenHash      string    `json:"-"`
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivity   time.Time `json:"last_activity"`
	CreatedAt      time.Time `json:"created_at"`
}

// Expired reporta si la sesión venció respecto de now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// AuditEntry registra una acción sensible (cambio de password, disable, sweep).
type AuditEntry struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
