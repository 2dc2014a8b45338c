package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapp/config"
	"blogapp/models"
	"blogapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	return c, rec
}

func adminUser(id uint) *models.User {
	return &models.User{Model: gorm.Model{ID: id}, Username: "admin", Role: models.RoleAdmin}
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestNewAuthenticator(t *testing.T) {
	authn := NewAuthenticator(config.AuthConfig{Mode: "session"})
	s, ok := authn.(*SessionAuthenticator)
	require.True(t, ok)
	assert.Equal(t, DefaultSessionCookie, s.Cookie)

	authn = NewAuthenticator(config.AuthConfig{Mode: "jwt", JWTSecret: "k", TTL: time.Hour, CookieName: "jwt"})
	j, ok := authn.(*JWTAuthenticator)
	require.True(t, ok)
	assert.Equal(t, "jwt", j.Cookie)
	assert.Equal(t, time.Hour, j.TTL)
}

func TestSessionAuthenticator_RoundTrip(t *testing.T) {
	authn := NewAuthenticator(config.AuthConfig{Mode: "session", TTL: time.Hour})

	c, rec := testContext(httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	require.NoError(t, authn.Issue(c, adminUser(3)))
	cookie := responseCookie(t, rec, DefaultSessionCookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	c, _ = testContext(req)
	userID, err := authn.Identify(c)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)

	authn.Revoke(c)
	_, err = authn.Identify(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionAuthenticator_NoCookie(t *testing.T) {
	authn := NewAuthenticator(config.AuthConfig{})

	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/admin", nil))
	_, err := authn.Identify(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	authn := &JWTAuthenticator{Secret: "secret", TTL: time.Hour, Cookie: DefaultTokenCookie}

	c, rec := testContext(httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	require.NoError(t, authn.Issue(c, adminUser(9)))
	cookie := responseCookie(t, rec, DefaultTokenCookie)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	c, _ = testContext(req)
	userID, err := authn.Identify(c)
	require.NoError(t, err)
	assert.Equal(t, uint(9), userID)
}

func TestJWTAuthenticator_BearerHeader(t *testing.T) {
	authn := &JWTAuthenticator{Secret: "secret", TTL: time.Hour, Cookie: DefaultTokenCookie}
	token, err := utils.GenerateJWT(4, models.RoleAdmin, "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/articles_data", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c, _ := testContext(req)
	userID, err := authn.Identify(c)
	require.NoError(t, err)
	assert.Equal(t, uint(4), userID)
}

func TestJWTAuthenticator_Errors(t *testing.T) {
	authn := &JWTAuthenticator{Secret: "secret", TTL: time.Hour, Cookie: DefaultTokenCookie}

	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/admin", nil))
	_, err := authn.Identify(c)
	assert.ErrorIs(t, err, utils.ErrMissingToken)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		Role:           models.RoleAdmin,
		StandardClaims: jwt.StandardClaims{Subject: "4", ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: DefaultTokenCookie, Value: expired})
	c, _ = testContext(req)
	_, err = authn.Identify(c)
	assert.ErrorIs(t, err, utils.ErrExpiredToken)
}

func TestJWTAuthenticator_EmptySecretRejectsForgedToken(t *testing.T) {
	authn := NewAuthenticator(config.AuthConfig{Mode: "jwt", TTL: time.Hour})

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		Role:           models.RoleAdmin,
		StandardClaims: jwt.StandardClaims{Subject: "1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	c, _ := testContext(req)
	_, err = authn.Identify(c)
	assert.ErrorIs(t, err, utils.ErrEmptySecret)

	c, _ = testContext(httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	assert.ErrorIs(t, authn.Issue(c, adminUser(1)), utils.ErrEmptySecret)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer "))
}
