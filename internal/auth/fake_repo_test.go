package auth

import (
	"context"
	"sync"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// fakeRepo implementa core.Repository en memoria para los tests del servicio.
type fakeRepo struct {
	mu sync.Mutex

	users       map[string]*core.User // por id
	orgs        map[string]*core.Organization
	memberships []core.Membership
	// grants: por "userID|orgID" → set de keys
	userPerms map[string]map[string]struct{}
	// roles: por "userID|orgID" → set de nombres; rolePerms por "orgID|role"
	userRoles map[string]map[string]struct{}
	rolePerms map[string]map[string]struct{}
	sessions  map[string]*core.Session
	auditLog  []core.AuditEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     map[string]*core.User{},
		orgs:      map[string]*core.Organization{},
		userPerms: map[string]map[string]struct{}{},
		userRoles: map[string]map[string]struct{}{},
		rolePerms: map[string]map[string]struct{}{},
		sessions:  map[string]*core.Session{},
	}
}

func key2(a, b string) string { return a + "|" + b }

func addTo(m map[string]map[string]struct{}, k, v string) {
	if m[k] == nil {
		m[k] = map[string]struct{}{}
	}
	m[k][v] = struct{}{}
}

// ----- UserStore -----

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) GetUserByID(_ context.Context, id string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) UpdatePasswordHash(_ context.Context, userID, newHash string, audit *core.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = newHash
	if audit != nil {
		f.auditLog = append(f.auditLog, *audit)
	}
	return nil
}

func (f *fakeRepo) SetUserActive(_ context.Context, userID string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.Active = active
	return nil
}

// ----- OrganizationStore -----

func (f *fakeRepo) GetOrganization(_ context.Context, orgID string) (*core.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orgs[orgID]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeRepo) ListUserOrganizations(_ context.Context, userID string) ([]core.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Organization
	for _, m := range f.memberships {
		if m.UserID != userID || !m.Active {
			continue
		}
		if o, ok := f.orgs[m.OrganizationID]; ok && o.Active {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasMembership(_ context.Context, userID, orgID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memberships {
		if m.UserID == userID && m.OrganizationID == orgID && m.Active {
			if o, ok := f.orgs[orgID]; ok && o.Active {
				return true, nil
			}
		}
	}
	return false, nil
}

// ----- RBACStore -----

func (f *fakeRepo) ResolvePermissions(_ context.Context, userID, orgID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := map[string]struct{}{}
	for p := range f.userPerms[key2(userID, orgID)] {
		set[p] = struct{}{}
	}
	for r := range f.userRoles[key2(userID, orgID)] {
		for p := range f.rolePerms[key2(orgID, r)] {
			set[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) ResolveRoles(_ context.Context, userID, orgID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for r := range f.userRoles[key2(userID, orgID)] {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) HasRoleAnywhere(_ context.Context, userID, roleName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, roles := range f.userRoles {
		if len(k) < len(userID)+1 || k[:len(userID)] != userID {
			continue
		}
		orgID := k[len(userID)+1:]
		if o, ok := f.orgs[orgID]; !ok || !o.Active {
			continue
		}
		if _, ok := roles[roleName]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) AssignRole(_ context.Context, userID, orgID, roleName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	addTo(f.userRoles, key2(userID, orgID), roleName)
	return nil
}

func (f *fakeRepo) RevokeRole(_ context.Context, userID, orgID, roleName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.userRoles[key2(userID, orgID)], roleName)
	return nil
}

func (f *fakeRepo) GrantPermission(_ context.Context, userID, orgID, permKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	addTo(f.userPerms, key2(userID, orgID), permKey)
	return nil
}

func (f *fakeRepo) RevokePermission(_ context.Context, userID, orgID, permKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.userPerms[key2(userID, orgID)], permKey)
	return nil
}

func (f *fakeRepo) AddRolePermissions(_ context.Context, orgID, roleName string, permKeys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range permKeys {
		addTo(f.rolePerms, key2(orgID, roleName), k)
	}
	return nil
}

// ----- SessionStore -----

func (f *fakeRepo) CreateSession(_ context.Context, tokenHash, userID, orgID string, ttl time.Duration) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	s := &core.Session{
		TokenHash:      tokenHash,
		UserID:         userID,
		OrganizationID: orgID,
		ExpiresAt:      now.Add(ttl),
		LastActivity:   now,
		CreatedAt:      now,
	}
	f.sessions[tokenHash] = s
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetSessionByToken(_ context.Context, tokenHash string) (*core.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) TouchSession(_ context.Context, tokenHash string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	now := time.Now().UTC()
	if !ok || !s.ExpiresAt.After(now) {
		return core.ErrNotFound
	}
	s.ExpiresAt = now.Add(ttl)
	s.LastActivity = now
	return nil
}

func (f *fakeRepo) ReassignOrganization(_ context.Context, tokenHash, orgID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	now := time.Now().UTC()
	if !ok || !s.ExpiresAt.After(now) {
		return core.ErrNotFound
	}
	s.OrganizationID = orgID
	s.ExpiresAt = now.Add(ttl)
	s.LastActivity = now
	return nil
}

func (f *fakeRepo) DeleteSessionByToken(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeRepo) DeleteSessionsForUser(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) DeleteOtherSessionsForUser(_ context.Context, userID, keepTokenHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, s := range f.sessions {
		if s.UserID == userID && k != keepTokenHash {
			delete(f.sessions, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) DeleteExpiredSessions(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	var n int64
	for k, s := range f.sessions {
		if !s.ExpiresAt.After(now) {
			delete(f.sessions, k)
			n++
		}
	}
	return n, nil
}

// ----- AuditStore -----

func (f *fakeRepo) InsertAudit(_ context.Context, e *core.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auditLog = append(f.auditLog, *e)
	return nil
}

func (f *fakeRepo) Ping(context.Context) error { return nil }
func (f *fakeRepo) Close()                     {}

var _ core.Repository = (*fakeRepo)(nil)

// helpers de armado

func (f *fakeRepo) addUser(id, email, name, passwordHash string) {
	f.users[id] = &core.User{
		ID: id, Email: email, Name: name,
		PasswordHash: passwordHash, Active: true, CreatedAt: time.Now().UTC(),
	}
}

func (f *fakeRepo) addOrg(id, name string) {
	f.orgs[id] = &core.Organization{ID: id, Name: name, Active: true, CreatedAt: time.Now().UTC()}
}

func (f *fakeRepo) addMember(userID, orgID string) {
	f.memberships = append(f.memberships, core.Membership{
		UserID: userID, OrganizationID: orgID, JoinedAt: time.Now().UTC(), Active: true,
	})
}

// revokeMember desactiva la membresía sin tocar la organización.
func (f *fakeRepo) revokeMember(userID, orgID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.memberships {
		if f.memberships[i].UserID == userID && f.memberships[i].OrganizationID == orgID {
			f.memberships[i].Active = false
		}
	}
}

// expireSession fuerza el vencimiento para tests de expiración.
func (f *fakeRepo) expireSession(tokenHash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[tokenHash]; ok {
		s.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}
}
