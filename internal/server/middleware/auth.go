package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qahwaan-system/internal/utils"
)

// JWTAuth guards the admin surface. It expects an "Authorization: Bearer"
// header carrying a staff token and stores the parsed claims on the context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header required",
			})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Bearer token required",
			})
			return
		}

		claims, err := utils.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set("staff_id", claims.StaffID)
		c.Set("staff_name", claims.StaffName)
		c.Next()
	}
}
