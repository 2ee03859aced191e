package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/gin-gonic/gin"
)

const (
	CtxUserID       = "userID"
	CtxUser         = "user"
	CtxSessionToken = "sessionToken"
)

type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (entity.User, error)
}

type AuthMiddleware struct {
	sessions   SessionValidator
	cookieName string
	loginPath  string
}

func NewAuthMiddleware(sessions SessionValidator, cookieName, loginPath string) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cookieName: cookieName, loginPath: loginPath}
}

// Middleware rejects requests without a live session with 401 and a login URL
// that brings the user back to the requested page.
func (m *AuthMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.authenticate(c) {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "authentication required",
			"login_url": m.loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI()),
		})
	}
}

// Optional attaches the identity when a valid session is presented and lets
// anonymous requests through.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.authenticate(c)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) bool {
	token := m.extractToken(c)
	if token == "" {
		return false
	}

	user, err := m.sessions.ValidateSession(c.Request.Context(), token)
	if err != nil {
		return false
	}

	c.Set(CtxUserID, user.ID)
	c.Set(CtxUser, user)
	c.Set(CtxSessionToken, token)
	return true
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if token := extractTokenFromHeader(c.GetHeader("Authorization")); token != "" {
		return token
	}

	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return cookie
}

func extractTokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// CurrentUser returns the authenticated user or the anonymous zero user.
func CurrentUser(c *gin.Context) entity.User {
	v, ok := c.Get(CtxUser)
	if !ok {
		return entity.User{}
	}
	user, _ := v.(entity.User)
	return user
}
