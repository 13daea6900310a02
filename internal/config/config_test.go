package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	p := writeYAML(t, `
auth:
  token_secret: "unit-secret"
storage:
  dsn: "postgres://localhost/peoplehub"
`)
	c, err := Load(p)
	require.NoError(t, err)

	require.Equal(t, ":8080", c.Server.Addr)
	require.Equal(t, "memory", c.Cache.Kind)
	require.Equal(t, "auth-token", c.Auth.Session.CookieName)
	require.Equal(t, "strict", c.Auth.Session.SameSite)
	require.Equal(t, 24*time.Hour, c.TokenTTLDuration())
	require.Equal(t, 24*time.Hour, c.SessionTTLDuration())
	require.Equal(t, 10, c.Security.BcryptCost)
	require.Equal(t, 12, c.Security.BcryptCostSensitive)
	require.Equal(t, 10, c.Rate.Login.Limit)
}

func TestMissingSecretFailsFast(t *testing.T) {
	p := writeYAML(t, `
storage:
  dsn: "postgres://localhost/peoplehub"
`)
	_, err := Load(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "token_secret")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "env-secret")
	t.Setenv("AUTH_SESSION_TTL", "12h")
	t.Setenv("SERVER_ADDR", ":9090")

	p := writeYAML(t, `{}`)
	c, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, "env-secret", c.Auth.TokenSecret)
	require.Equal(t, 12*time.Hour, c.SessionTTLDuration())
	require.Equal(t, ":9090", c.Server.Addr)
}

func TestProdForcesSecureCookie(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	p := writeYAML(t, `
auth:
  token_secret: "s"
  session:
    secure: false
`)
	c, err := Load(p)
	require.NoError(t, err)
	require.True(t, c.Auth.Session.Secure)
}

func TestMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "env-secret")

	c, err := Load(filepath.Join(t.TempDir(), "no-existe.yaml"))
	require.NoError(t, err)
	require.Equal(t, "env-secret", c.Auth.TokenSecret)
	require.Equal(t, ":8080", c.Server.Addr)
}

func TestBadDurationRejected(t *testing.T) {
	p := writeYAML(t, `
auth:
  token_secret: "s"
  token_ttl: "not-a-duration"
`)
	_, err := Load(p)
	require.Error(t, err)
}
