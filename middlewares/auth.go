package middlewares

import (
	"net/http"
	"strings"
	"time"

	"blogapp/config"
	"blogapp/models"
	"blogapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	DefaultSessionCookie = "session_id"
	DefaultTokenCookie   = "token"
)

var ErrNoSession = errors.New("no session")

// Authenticator remembers which admin a browser belongs to.
type Authenticator interface {
	// Issue marks the response so later requests identify as user.
	Issue(c *gin.Context, user *models.User) error
	// Identify returns the user id the request carries.
	Identify(c *gin.Context) (uint, error)
	Revoke(c *gin.Context)
}

// NewAuthenticator picks the implementation configured in auth.mode.
func NewAuthenticator(cfg config.AuthConfig) Authenticator {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = utils.DefaultTokenTTL
	}

	if cfg.Mode == "jwt" {
		cookie := cfg.CookieName
		if cookie == "" {
			cookie = DefaultTokenCookie
		}
		return &JWTAuthenticator{Secret: cfg.JWTSecret, TTL: ttl, Cookie: cookie, Secure: cfg.Secure}
	}

	cookie := cfg.CookieName
	if cookie == "" {
		cookie = DefaultSessionCookie
	}
	return &SessionAuthenticator{Store: NewSessionStore(ttl), Cookie: cookie, Secure: cfg.Secure}
}

type SessionAuthenticator struct {
	Store  *SessionStore
	Cookie string
	Secure bool
}

func (a *SessionAuthenticator) Issue(c *gin.Context, user *models.User) error {
	id := a.Store.Create(user.ID)
	setCookie(c, a.Cookie, id, int(a.Store.ttl/time.Second), a.Secure)
	return nil
}

func (a *SessionAuthenticator) Identify(c *gin.Context) (uint, error) {
	id, err := c.Cookie(a.Cookie)
	if err != nil || id == "" {
		return 0, ErrNoSession
	}
	userID, ok := a.Store.Get(id)
	if !ok {
		return 0, ErrNoSession
	}
	return userID, nil
}

func (a *SessionAuthenticator) Revoke(c *gin.Context) {
	if id, err := c.Cookie(a.Cookie); err == nil {
		a.Store.Delete(id)
	}
	setCookie(c, a.Cookie, "", -1, a.Secure)
}

type JWTAuthenticator struct {
	Secret string
	TTL    time.Duration
	Cookie string
	Secure bool
}

func (a *JWTAuthenticator) Issue(c *gin.Context, user *models.User) error {
	token, err := utils.GenerateJWT(user.ID, user.Role, a.Secret, a.TTL)
	if err != nil {
		return err
	}
	setCookie(c, a.Cookie, token, int(a.TTL/time.Second), a.Secure)
	return nil
}

// Identify accepts the token from the cookie or an Authorization bearer
// header.
func (a *JWTAuthenticator) Identify(c *gin.Context) (uint, error) {
	token, _ := c.Cookie(a.Cookie)
	if token == "" {
		token = bearerToken(c.GetHeader("Authorization"))
	}

	claims, err := utils.ParseJWT(token, a.Secret)
	if err != nil {
		return 0, err
	}
	return claims.UserID()
}

func (a *JWTAuthenticator) Revoke(c *gin.Context) {
	setCookie(c, a.Cookie, "", -1, a.Secure)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func setCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}
