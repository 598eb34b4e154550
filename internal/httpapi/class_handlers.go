package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/class"
)

func (a *API) listClasses(c *gin.Context) {
	classes, err := a.classes.List(c.Request.Context())
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (a *API) createClass(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Division string `json:"division" binding:"required"`
		Stream   string `json:"stream" binding:"required"`
		Grade    string `json:"grade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cls, err := a.classes.Create(c.Request.Context(), class.NewClass{
		Name:     req.Name,
		Division: req.Division,
		Stream:   req.Stream,
		Grade:    req.Grade,
	})
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, cls)
}

func (a *API) assignStudent(c *gin.Context) {
	studentID := c.Query("student_id")
	if studentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id query parameter required"})
		return
	}
	if err := a.classes.AssignStudent(c.Request.Context(), c.Param("id"), studentID); err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "student assigned to class"})
}
