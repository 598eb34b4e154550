package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/auth"
)

// createSession exchanges the OAuth callback session id for an identity,
// provisioning the user on first login, and starts a cookie session.
func (a *API) createSession(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := a.provider.Exchange(c.Request.Context(), req.SessionID)
	if err != nil {
		a.log.Warnw("oauth exchange failed", "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session id"})
		return
	}

	u, err := a.users.EnsureByEmail(c.Request.Context(), id.Email, id.Name, id.Picture)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	sess, err := a.sessions.Start(c.Request.Context(), u.ID, id.SessionToken)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(auth.CookieName, sess.Token, int(a.sessions.TTL().Seconds()), "/", "", a.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"user": u, "session_token": sess.Token})
}

func (a *API) logout(c *gin.Context) {
	if tok := auth.TokenFromRequest(c); tok != "" {
		if err := a.sessions.End(c.Request.Context(), tok); err != nil {
			a.log.Warnw("logout: session delete failed", "err", err)
		}
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", a.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (a *API) me(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}
