package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/export"
)

// exportClassAttendance streams a class's attendance as an Excel workbook,
// optionally narrowed to one date.
func (a *API) exportClassAttendance(c *gin.Context) {
	ctx := c.Request.Context()
	cls, err := a.classes.GetByID(ctx, c.Param("class_id"))
	if err != nil {
		a.respondErr(c, err)
		return
	}
	records, err := a.ledger.ListByClassDate(ctx, cls.ID, c.Query("date"))
	if err != nil {
		a.respondErr(c, err)
		return
	}

	users, err := a.users.List(ctx)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	f, err := export.ClassAttendanceWorkbook(cls.Name, records, names)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "attendance-"+cls.Name+".xlsx"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		a.log.Errorw("excel export write failed", "class", cls.ID, "err", err)
	}
}
