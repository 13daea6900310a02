// Package auth implementa el núcleo de sesiones: login, verificación con
// expiración deslizante, cambio de organización activa y password. La fila de
// sesión en la base es la única fuente de verdad; el JWT solo porta identidad
// y los grants se resuelven frescos contra el store en cada verificación.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/audit"
	"github.com/dropDatabas3/peoplehub/internal/directory"
	"github.com/dropDatabas3/peoplehub/internal/email"
	"github.com/dropDatabas3/peoplehub/internal/jwt"
	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
	"github.com/dropDatabas3/peoplehub/internal/security/password"
	sectoken "github.com/dropDatabas3/peoplehub/internal/security/token"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// SuperAdminRole es el nombre exacto del rol que otorga acceso global. Se
// compara case-sensitive contra role.name.
const SuperAdminRole = "Super Admin"

const minPasswordLen = 8

// UserSession es la vista autenticada que consumen los handlers. Permissions
// y Roles vienen siempre no-nil para serializar como [] y no como null.
type UserSession struct {
	ID                  string               `json:"id"`
	Email               string               `json:"email"`
	Name                string               `json:"name"`
	Avatar              *string              `json:"avatar,omitempty"`
	Permissions         []string             `json:"permissions"`
	Roles               []string             `json:"roles"`
	CurrentOrganization *core.Organization   `json:"current_organization,omitempty"`
	Organizations       []core.Organization  `json:"organizations"`
}

// HasPermission busca la key en el set ya resuelto de la vista.
func (u *UserSession) HasPermission(key string) bool {
	for _, p := range u.Permissions {
		if p == key {
			return true
		}
	}
	return false
}

type LoginInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// PendingUser es lo único que se revela en el paso de selección de
// organización: sin token, sin grants.
type PendingUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResult struct {
	RequiresOrganizationSelection bool                `json:"requires_organization_selection,omitempty"`
	Organizations                 []core.Organization `json:"organizations,omitempty"`
	PendingUser                   *PendingUser        `json:"pending_user,omitempty"`

	User      *UserSession `json:"user,omitempty"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expires_at,omitempty"`
}

type Service struct {
	repo       core.Repository
	issuer     *jwt.Issuer
	costs      password.Costs
	sessionTTL time.Duration
	catalog    *directory.Catalog
	recorder   *audit.Recorder
	mailer     email.Mailer
}

func NewService(repo core.Repository, issuer *jwt.Issuer, costs password.Costs, sessionTTL time.Duration, catalog *directory.Catalog, recorder *audit.Recorder, mailer email.Mailer) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Service{
		repo:       repo,
		issuer:     issuer,
		costs:      costs.Normalize(),
		sessionTTL: sessionTTL,
		catalog:    catalog,
		recorder:   recorder,
		mailer:     mailer,
	}
}

func (s *Service) SessionTTL() time.Duration { return s.sessionTTL }

// Login valida credenciales y resuelve la organización activa. Con más de
// una membresía y sin organization_id explícito devuelve el selector sin
// crear sesión; el segundo paso repite email+password completos.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	// campos ausentes o email sin forma son error de request, no de credenciales
	if email == "" || in.Password == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	// cuenta bloqueada responde igual que password malo
	if !user.Active || !password.Verify(in.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	orgs, err := s.catalog.OrganizationsFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var orgID string
	switch {
	case in.OrganizationID != "":
		// la autorización consulta membresía directo al store; el catálogo
		// cacheado queda solo para la vista
		if err := s.authorizeOrg(ctx, user.ID, in.OrganizationID); err != nil {
			return nil, err
		}
		orgID = in.OrganizationID
	case len(orgs) == 1:
		orgID = orgs[0].ID
	case len(orgs) > 1:
		return &LoginResult{
			RequiresOrganizationSelection: true,
			Organizations:                 orgs,
			PendingUser:                   &PendingUser{Email: user.Email, Name: user.Name},
		}, nil
	default:
		// sin membresías: sesión válida pero sin organización ni grants
	}

	tok, exp, err := s.issuer.Issue(jwt.Identity{UserID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.CreateSession(ctx, sectoken.SHA256Base64URL(tok), user.ID, orgID, s.sessionTTL); err != nil {
		return nil, err
	}

	view, err := s.view(ctx, user, orgID, orgs)
	if err != nil {
		return nil, err
	}

	logger.From(ctx).Info("login ok", logger.UserID(user.ID), logger.OrgID(orgID))
	return &LoginResult{User: view, Token: tok, ExpiresAt: exp}, nil
}

// VerifyToken valida sesión + firma y arma la vista con grants frescos.
// Toca la sesión: cada verificación corre la ventana de expiración.
func (s *Service) VerifyToken(ctx context.Context, raw string) (*UserSession, error) {
	hash := sectoken.SHA256Base64URL(raw)

	sess, err := s.repo.GetSessionByToken(ctx, hash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.repo.DeleteSessionByToken(ctx, hash)
		return nil, ErrUnauthorized
	}

	id, err := s.issuer.Verify(raw)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if id.UserID != sess.UserID {
		// un token firmado para otro usuario no puede montar esta sesión
		_ = s.repo.DeleteSessionByToken(ctx, hash)
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			_ = s.repo.DeleteSessionByToken(ctx, hash)
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !user.Active {
		if _, err := s.repo.DeleteSessionsForUser(ctx, user.ID); err != nil {
			logger.From(ctx).Warn("verify: limpieza de sesiones falló",
				logger.UserID(user.ID), logger.Err(err))
		}
		return nil, ErrUnauthorized
	}

	if err := s.repo.TouchSession(ctx, hash, s.sessionTTL); err != nil && !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	return s.view(ctx, user, sess.OrganizationID, nil)
}

// SwitchOrganization cambia la organización activa de una sesión viva. No
// emite token nuevo: la misma fila de sesión cambia de organización.
func (s *Service) SwitchOrganization(ctx context.Context, raw, orgID string) (*UserSession, error) {
	if orgID == "" {
		return nil, core.ErrInvalid
	}
	hash := sectoken.SHA256Base64URL(raw)

	sess, err := s.repo.GetSessionByToken(ctx, hash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.repo.DeleteSessionByToken(ctx, hash)
		return nil, ErrUnauthorized
	}

	id, err := s.issuer.Verify(raw)
	if err != nil || id.UserID != sess.UserID {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, sess.UserID)
	if err != nil || !user.Active {
		return nil, ErrUnauthorized
	}

	if err := s.authorizeOrg(ctx, user.ID, orgID); err != nil {
		return nil, err
	}

	if err := s.repo.ReassignOrganization(ctx, hash, orgID, s.sessionTTL); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	s.record(ctx, user.ID, audit.ActionOrgSwitched, map[string]any{"organization_id": orgID})
	return s.view(ctx, user, orgID, nil)
}

// Logout borra la fila de sesión. Idempotente: sin sesión igual responde ok.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	return s.repo.DeleteSessionByToken(ctx, sectoken.SHA256Base64URL(raw))
}

// ChangePassword verifica la password vigente, escribe el hash nuevo junto
// con la auditoría en una transacción, bota las demás sesiones del usuario y
// avisa por correo (best effort).
func (s *Service) ChangePassword(ctx context.Context, raw, current, newPassword string) error {
	hash := sectoken.SHA256Base64URL(raw)

	sess, err := s.repo.GetSessionByToken(ctx, hash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.repo.DeleteSessionByToken(ctx, hash)
		return ErrUnauthorized
	}
	id, err := s.issuer.Verify(raw)
	if err != nil || id.UserID != sess.UserID {
		return ErrUnauthorized
	}

	user, err := s.repo.GetUserByID(ctx, sess.UserID)
	if err != nil || !user.Active {
		return ErrUnauthorized
	}

	if !password.Verify(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	newHash, err := password.Hash(newPassword, s.costs.Sensitive)
	if err != nil {
		return err
	}

	entry := audit.NewEntry(user.ID, audit.ActionPasswordChanged, nil)
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, newHash, entry); err != nil {
		return err
	}

	if n, err := s.repo.DeleteOtherSessionsForUser(ctx, user.ID, hash); err != nil {
		logger.From(ctx).Warn("password: revocación de otras sesiones falló",
			logger.UserID(user.ID), logger.Err(err))
	} else if n > 0 {
		logger.From(ctx).Info("password: otras sesiones revocadas",
			logger.UserID(user.ID), logger.Count64(n))
	}

	if s.mailer != nil {
		msg := email.Message{
			To:       user.Email,
			Subject:  "Tu contraseña fue cambiada",
			TextBody: fmt.Sprintf("Hola %s: tu contraseña se cambió el %s. Si no fuiste tú, contacta al administrador.", user.Name, time.Now().Format("02-01-2006 15:04")),
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			logger.From(ctx).Warn("password: aviso por correo falló",
				logger.UserID(user.ID), logger.Err(err))
		}
	}
	return nil
}

// HasPermission resuelve contra el store, nunca contra un cache. Sin orgID
// explícito cae a la primera membresía activa; Super Admin pasa siempre.
func (s *Service) HasPermission(ctx context.Context, userID, key, orgID string) (bool, error) {
	super, err := s.IsSuperAdmin(ctx, userID)
	if err != nil {
		return false, err
	}
	if super {
		return true, nil
	}

	if orgID == "" {
		orgs, err := s.repo.ListUserOrganizations(ctx, userID)
		if err != nil {
			return false, err
		}
		if len(orgs) == 0 {
			return false, nil
		}
		orgID = orgs[0].ID
	}

	perms, err := s.repo.ResolvePermissions(ctx, userID, orgID)
	if err != nil {
		return false, err
	}
	for _, p := range perms {
		if p == key {
			return true, nil
		}
	}
	return false, nil
}

// IsSuperAdmin: rol con nombre exacto "Super Admin" en cualquier
// organización activa.
func (s *Service) IsSuperAdmin(ctx context.Context, userID string) (bool, error) {
	return s.repo.HasRoleAnywhere(ctx, userID, SuperAdminRole)
}

// authorizeOrg decide si el usuario puede operar en la organización: por
// membresía activa o por override de Super Admin sobre una organización
// vigente. Siempre consulta el store, nunca el catálogo cacheado.
func (s *Service) authorizeOrg(ctx context.Context, userID, orgID string) error {
	ok, err := s.repo.HasMembership(ctx, userID, orgID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	super, err := s.IsSuperAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !super {
		return ErrForbidden
	}

	org, err := s.repo.GetOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if !org.Active || (org.ExpiresAt != nil && !org.ExpiresAt.After(time.Now().UTC())) {
		return ErrForbidden
	}
	return nil
}

// view arma la UserSession con grants recién resueltos. orgs nil fuerza la
// consulta al catálogo.
func (s *Service) view(ctx context.Context, user *core.User, orgID string, orgs []core.Organization) (*UserSession, error) {
	if orgs == nil {
		var err error
		orgs, err = s.catalog.OrganizationsFor(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}

	perms := []string{}
	roles := []string{}
	var current *core.Organization

	if orgID != "" {
		var err error
		if perms, err = s.repo.ResolvePermissions(ctx, user.ID, orgID); err != nil {
			return nil, err
		}
		if roles, err = s.repo.ResolveRoles(ctx, user.ID, orgID); err != nil {
			return nil, err
		}
		if perms == nil {
			perms = []string{}
		}
		if roles == nil {
			roles = []string{}
		}
		for i := range orgs {
			if orgs[i].ID == orgID {
				current = &orgs[i]
				break
			}
		}
		if current == nil {
			org, err := s.repo.GetOrganization(ctx, orgID)
			if err != nil && !errors.Is(err, core.ErrNotFound) {
				return nil, err
			}
			current = org
		}
	}

	if orgs == nil {
		orgs = []core.Organization{}
	}

	return &UserSession{
		ID:                  user.ID,
		Email:               user.Email,
		Name:                user.Name,
		Avatar:              user.Avatar,
		Permissions:         perms,
		Roles:               roles,
		CurrentOrganization: current,
		Organizations:       orgs,
	}, nil
}

func (s *Service) record(ctx context.Context, userID, action string, detail map[string]any) {
	if s.recorder != nil {
		s.recorder.Record(ctx, userID, action, detail)
	}
}
