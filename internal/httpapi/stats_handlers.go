package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/auth"
)

// dashboardStats returns the role-appropriate aggregate for the caller.
func (a *API) dashboardStats(c *gin.Context) {
	st, err := a.stats.ForUser(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
