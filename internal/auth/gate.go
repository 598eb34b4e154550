package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/metrics"
	"schoolattend/internal/user"
)

// RequireRole aborts with 403 unless the authenticated user holds one of the
// allowed roles. It must run after Authenticate. A denial is always an
// explicit forbidden response, never silently empty data.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		metrics.AuthFailures.Inc()
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// CanViewStudentAttendance reports whether actor may read studentID's
// attendance history: the student themselves, a parent linked to the student,
// or any teacher/admin.
func CanViewStudentAttendance(actor user.User, studentID string) bool {
	switch actor.Role {
	case user.RoleAdmin, user.RoleTeacher:
		return true
	case user.RoleStudent:
		return actor.ID == studentID
	case user.RoleParent:
		for _, childID := range actor.ParentChildIDs {
			if childID == studentID {
				return true
			}
		}
	}
	return false
}
