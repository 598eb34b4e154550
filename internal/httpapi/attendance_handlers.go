package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/attendance"
	"schoolattend/internal/auth"
	"schoolattend/internal/metrics"
)

// submitAttendance records one batch of markings for a class and date.
// Existing records for the same (class, student, date) keys are overwritten.
func (a *API) submitAttendance(c *gin.Context) {
	var req struct {
		Date    string `json:"date" binding:"required"`
		Records []struct {
			StudentID string `json:"student_id" binding:"required"`
			Status    string `json:"status" binding:"required"`
			Notes     string `json:"notes"`
		} `json:"attendance_records" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries := make([]attendance.Entry, 0, len(req.Records))
	for _, rec := range req.Records {
		entries = append(entries, attendance.Entry{
			StudentID: rec.StudentID,
			Status:    attendance.Status(rec.Status),
			Notes:     rec.Notes,
		})
	}

	actor := auth.CurrentUser(c)
	written, err := a.ledger.Submit(c.Request.Context(), c.Param("class_id"), req.Date, entries, actor.ID)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attendance marked", "written": written})
}

// classAttendance returns records for a class, optionally for one date.
// Students without a record for that date are unmarked, not absent.
func (a *API) classAttendance(c *gin.Context) {
	records, err := a.ledger.ListByClassDate(c.Request.Context(), c.Param("class_id"), c.Query("date"))
	if err != nil {
		a.respondErr(c, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, records)
}

// studentAttendance returns a student's history, most recent first. Allowed
// for the student themselves, a linked parent, or teacher/admin.
func (a *API) studentAttendance(c *gin.Context) {
	studentID := c.Param("student_id")
	actor := auth.CurrentUser(c)
	if !auth.CanViewStudentAttendance(actor, studentID) {
		metrics.AuthFailures.Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	records, err := a.ledger.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	c.JSON(http.StatusOK, records)
}
