package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/libraryual/pkg"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

// Recovery recovers from panics, logs them, and returns 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				// stack goes to the log only
				logger.With(c.Request.Context(), map[string]any{
					"panic": r,
					"stack": string(debug.Stack()),
					"route": c.FullPath(),
				}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.NewError("internal_error", "internal server error"))
			}
		}()
		c.Next()
	}
}
