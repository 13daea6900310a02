package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/peoplehub/internal/auth"
	"github.com/dropDatabas3/peoplehub/internal/directory"
	"github.com/dropDatabas3/peoplehub/internal/jwt"
	"github.com/dropDatabas3/peoplehub/internal/security/password"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// stubRepo embebe la interfaz: solo se implementa lo que el flujo de login
// y logout tocan. Cualquier otra llamada revienta el test, que es la idea.
type stubRepo struct {
	core.Repository
	user     *core.User
	orgs     []core.Organization
	sessions map[string]*core.Session
}

func (s *stubRepo) GetUserByEmail(_ context.Context, email string) (*core.User, error) {
	if s.user != nil && s.user.Email == email {
		cp := *s.user
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (s *stubRepo) ListUserOrganizations(context.Context, string) ([]core.Organization, error) {
	return s.orgs, nil
}

func (s *stubRepo) CreateSession(_ context.Context, tokenHash, userID, orgID string, ttl time.Duration) (*core.Session, error) {
	now := time.Now().UTC()
	sess := &core.Session{
		TokenHash: tokenHash, UserID: userID, OrganizationID: orgID,
		ExpiresAt: now.Add(ttl), LastActivity: now, CreatedAt: now,
	}
	s.sessions[tokenHash] = sess
	return sess, nil
}

func (s *stubRepo) DeleteSessionByToken(_ context.Context, tokenHash string) error {
	delete(s.sessions, tokenHash)
	return nil
}

func (s *stubRepo) ResolvePermissions(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (s *stubRepo) ResolveRoles(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func newStub(t *testing.T, orgs ...core.Organization) *stubRepo {
	t.Helper()
	hash, err := password.Hash("secreta123", 4)
	require.NoError(t, err)
	return &stubRepo{
		user: &core.User{
			ID: "u1", Email: "ana@acme.cl", Name: "Ana",
			PasswordHash: hash, Active: true,
		},
		orgs:     orgs,
		sessions: map[string]*core.Session{},
	}
}

func newLoginService(t *testing.T, repo *stubRepo) *auth.Service {
	t.Helper()
	issuer, err := jwt.NewIssuer("secret-para-tests-suficientemente-largo", "peoplehub-test", time.Hour)
	require.NoError(t, err)
	cat := directory.New(repo, nil, time.Minute)
	return auth.NewService(repo, issuer, password.Costs{Default: 4, Sensitive: 4}, time.Hour, cat, nil, nil)
}

func testCookieCfg() CookieConfig {
	return CookieConfig{Name: "auth-token", SameSite: "strict", TTL: time.Hour}
}

func doLogin(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth-token" {
			return c
		}
	}
	return nil
}

func TestLoginSingleOrgSetsCookie(t *testing.T) {
	repo := newStub(t, core.Organization{ID: "org-a", Name: "Acme", Active: true})
	h := NewLogin(newLoginService(t, repo), testCookieCfg(), nil)

	rr := doLogin(t, h, `{"email":"ana@acme.cl","password":"secreta123"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res auth.LoginResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Token)
	require.NotNil(t, res.User)

	c := sessionCookie(rr)
	require.NotNil(t, c, "login exitoso debe setear la cookie")
	assert.Equal(t, res.Token, c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestLoginMultiOrgGateSetsNoCookie(t *testing.T) {
	repo := newStub(t,
		core.Organization{ID: "org-a", Name: "Acme", Active: true},
		core.Organization{ID: "org-b", Name: "Beta", Active: true},
	)
	h := NewLogin(newLoginService(t, repo), testCookieCfg(), nil)

	rr := doLogin(t, h, `{"email":"ana@acme.cl","password":"secreta123"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res auth.LoginResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.True(t, res.RequiresOrganizationSelection)
	assert.Empty(t, res.Token)
	assert.Nil(t, sessionCookie(rr), "el selector no debe dejar cookie")
	assert.Empty(t, repo.sessions, "el selector no debe crear sesión")
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newStub(t, core.Organization{ID: "org-a", Name: "Acme", Active: true})
	var lastResult string
	h := NewLogin(newLoginService(t, repo), testCookieCfg(), func(res string) { lastResult = res })

	rr := doLogin(t, h, `{"email":"ana@acme.cl","password":"mala"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "invalid_credentials", lastResult)
	assert.Nil(t, sessionCookie(rr))
}

func TestLoginMissingFieldsIsBadRequest(t *testing.T) {
	repo := newStub(t)
	var lastResult string
	h := NewLogin(newLoginService(t, repo), testCookieCfg(), func(res string) { lastResult = res })

	rr := doLogin(t, h, `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "campos vacíos son request inválido, no 401")
	assert.Contains(t, rr.Body.String(), "invalid_request")
	assert.Equal(t, "bad_request", lastResult)
	assert.Nil(t, sessionCookie(rr))

	rr = doLogin(t, h, `{"email":"sin-arroba","password":"secreta123"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginRejectsNonJSON(t *testing.T) {
	repo := newStub(t)
	h := NewLogin(newLoginService(t, repo), testCookieCfg(), nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader("email=x"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogoutAlwaysOKAndClearsCookie(t *testing.T) {
	repo := newStub(t, core.Organization{ID: "org-a", Name: "Acme", Active: true})
	svc := newLoginService(t, repo)

	login := NewLogin(svc, testCookieCfg(), nil)
	rr := doLogin(t, login, `{"email":"ana@acme.cl","password":"secreta123"}`)
	tok := sessionCookie(rr).Value

	logout := NewLogout(svc, testCookieCfg())

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: tok})
	rr = httptest.NewRecorder()
	logout.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	c := sessionCookie(rr)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge, "logout deja cookie de borrado")
	assert.Empty(t, repo.sessions)

	// sin cookie ni header tampoco es error
	rr = httptest.NewRecorder()
	logout.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
