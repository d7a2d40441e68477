package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/romasdental/clinic-portal/pkg/httputil"
)

// ErrorHandler renders the last error attached with c.Error when nothing
// has been written yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		httputil.RespondWithError(c, c.Errors.Last().Err)
	}
}
