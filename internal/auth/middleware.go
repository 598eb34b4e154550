package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/metrics"
	"schoolattend/internal/session"
	"schoolattend/internal/user"
)

// CookieName is the session cookie set on login.
const CookieName = "session_token"

const userKey = "auth.user"

// TokenFromRequest extracts the session token: cookie first, then bearer header.
func TokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie(CookieName); err == nil && tok != "" {
		return tok
	}
	authz := c.GetHeader("Authorization")
	if authz != "" && strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[len("bearer "):])
	}
	return ""
}

// Authenticate resolves the session token into a user and stores it in the
// request context. Missing, expired or dangling sessions all fail with 401.
func Authenticate(sessions *session.Service, users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := TokenFromRequest(c)
		if tok == "" {
			abortUnauthenticated(c)
			return
		}
		sess, err := sessions.Resolve(c.Request.Context(), tok)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		u, err := users.GetByID(c.Request.Context(), sess.UserID)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	metrics.AuthFailures.Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

// CurrentUser returns the authenticated user set by Authenticate.
func CurrentUser(c *gin.Context) user.User {
	u, _ := c.Get(userKey)
	usr, _ := u.(user.User)
	return usr
}
