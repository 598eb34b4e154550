package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolattend/internal/attendance"
	"schoolattend/internal/class"
	"schoolattend/internal/observability"
	"schoolattend/internal/user"
)

// respondErr maps domain errors onto HTTP statuses. Unknown errors are
// logged, reported and hidden behind a generic 500.
func (a *API) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound), errors.Is(err, class.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrBadRole),
		errors.Is(err, user.ErrNotStudent),
		errors.Is(err, attendance.ErrBadDate),
		errors.Is(err, attendance.ErrFutureDate),
		errors.Is(err, attendance.ErrBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		a.log.Errorw("request failed", "path", c.FullPath(), "err", err)
		observability.CaptureErr(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
