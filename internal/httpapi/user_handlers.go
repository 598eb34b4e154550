package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/user"
)

func (a *API) listUsers(c *gin.Context) {
	users, err := a.users.List(c.Request.Context())
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (a *API) createUser(c *gin.Context) {
	var req struct {
		Email          string   `json:"email" binding:"required,email"`
		Name           string   `json:"name" binding:"required"`
		Role           string   `json:"role" binding:"required"`
		StudentNo      string   `json:"student_id"`
		ClassID        string   `json:"class_id"`
		ParentChildIDs []string `json:"parent_child_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := a.users.Create(c.Request.Context(), user.NewUser{
		Email:          req.Email,
		Name:           req.Name,
		Role:           user.Role(req.Role),
		StudentNo:      req.StudentNo,
		ClassID:        req.ClassID,
		ParentChildIDs: req.ParentChildIDs,
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (a *API) updateUserRole(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role query parameter required"})
		return
	}
	if err := a.users.UpdateRole(c.Request.Context(), c.Param("id"), user.Role(role)); err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user role updated"})
}
