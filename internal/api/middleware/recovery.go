package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plumeblog/plume/pkg/logger"
)

// Recovery renders the 500 page on panic and forwards the panic to
// sentry when a DSN was configured at startup.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				sentry.CurrentHub().Recover(rec)
				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
				)
				c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
				c.Abort()
			}
		}()
		c.Next()
	}
}
