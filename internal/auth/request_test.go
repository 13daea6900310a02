package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenFromRequestBearerFirst(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Bearer tok-header")
	r.AddCookie(&http.Cookie{Name: "auth-token", Value: "tok-cookie"})

	assert.Equal(t, "tok-header", TokenFromRequest(r, "auth-token"))
}

func TestTokenFromRequestCookieFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.AddCookie(&http.Cookie{Name: "auth-token", Value: "tok-cookie"})

	assert.Equal(t, "tok-cookie", TokenFromRequest(r, "auth-token"))
}

func TestTokenFromRequestNone(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	r.Header.Set("Authorization", "Basic abc")

	assert.Empty(t, TokenFromRequest(r, "auth-token"))
}
