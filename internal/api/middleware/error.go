package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware is the top-level failure boundary: panics and
// errors attached by handlers render the generic error page instead of
// tearing down the request pipeline.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				if !c.Writer.Written() {
					c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{})
		}
	}
}
