package middleware

import (
	"DigitalOrganisms/internal/pkg/logger"
	"DigitalOrganisms/internal/pkg/security"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为 0
func AuthOptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set(logger.UserIDKey, uint64(0))
			c.Next()
			return
		}

		claims, err := security.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.Set(logger.UserIDKey, uint64(0))
		} else {
			setIdentity(c, claims)
		}

		c.Next()
	}
}
