package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCookie_SetRoundTrip(t *testing.T) {
	c := NewSessionCookie([]byte("test-secret"), "kambaz_session", time.Hour, false)

	rec := httptest.NewRecorder()
	require.NoError(t, c.Set(rec, "token-1"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "kambaz_session", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.Equal(t, cookie.Value, c.FromRequest(req))

	token, err := jwtauth.VerifyToken(c.TokenAuth, cookie.Value)
	require.NoError(t, err)
	claims, err := token.AsMap(req.Context())
	require.NoError(t, err)
	sid, err := GetSessionIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "token-1", sid)
}

func TestSessionCookie_SecureUsesSameSiteNone(t *testing.T) {
	c := NewSessionCookie([]byte("test-secret"), "kambaz_session", time.Hour, true)
	rec := httptest.NewRecorder()
	require.NoError(t, c.Set(rec, "token-1"))

	cookie := rec.Result().Cookies()[0]
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestSessionCookie_Clear(t *testing.T) {
	c := NewSessionCookie([]byte("test-secret"), "kambaz_session", time.Hour, false)
	rec := httptest.NewRecorder()
	c.Clear(rec)

	cookie := rec.Result().Cookies()[0]
	assert.Equal(t, "kambaz_session", cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestSessionCookie_RejectsForeignSignature(t *testing.T) {
	ours := NewSessionCookie([]byte("ours"), "kambaz_session", time.Hour, false)
	theirs := NewSessionCookie([]byte("theirs"), "kambaz_session", time.Hour, false)

	forged, err := theirs.GenerateToken("token-1")
	require.NoError(t, err)
	_, err = jwtauth.VerifyToken(ours.TokenAuth, forged)
	assert.Error(t, err)
}

func TestSessionCookie_FromRequestWithoutCookie(t *testing.T) {
	c := NewSessionCookie([]byte("test-secret"), "kambaz_session", time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, c.FromRequest(req))
}

func TestGetSessionIDFromClaims(t *testing.T) {
	_, err := GetSessionIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)
	_, err = GetSessionIDFromClaims(map[string]interface{}{"sid": 42})
	assert.Error(t, err)
}
