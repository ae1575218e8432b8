package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tahcohcat/gofigure-interrogation/config"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestDisabledLetsEverythingThrough(t *testing.T) {
	a := New(config.ServerConfig{SessionSecret: "secret"})
	assert.False(t, a.Enabled())
	assert.True(t, a.CheckPassword("anything"))

	rec := httptest.NewRecorder()
	a.Middleware(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scenarios", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFlow(t *testing.T) {
	hash, err := HashPassword("elementary")
	require.NoError(t, err)

	a := New(config.ServerConfig{SessionSecret: "secret", PasswordHash: hash})
	require.True(t, a.Enabled())

	// no session
	rec := httptest.NewRecorder()
	a.Middleware(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scenarios", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login required")

	// wrong password
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"watson"}`))
	req.Header.Set("Content-Type", "application/json")
	a.LoginHandler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// form login
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(url.Values{"password": {"elementary"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	a.LoginHandler(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/scenarios", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	a.Middleware(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadJSON(t *testing.T) {
	a := New(config.ServerConfig{SessionSecret: "secret", PasswordHash: "$2a$10$invalid"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	a.LoginHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
