package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic into a 500 and logs it with the stack.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		log.Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		response.InternalServerError(c, "Internal server error")
		c.Abort()
	})
}
