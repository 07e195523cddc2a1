package user

import (
	"net/http"
	"strings"

	"github.com/echo-insight/echo-insight-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// UserIDKey 是认证中间件写入Gin上下文的键名。
const UserIDKey = "userID"

// RequireAuthMiddleware 校验Bearer访问令牌，并把已认证的用户ID放入Gin上下文。
// 核心业务把该ID当作不透明输入，凭证协议本身不属于核心逻辑。
func RequireAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		raw := extractBearerToken(authHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "访问令牌缺失"})
			return
		}

		claims, err := token.ValidateToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "无效的访问令牌"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID 从Gin上下文中读取认证中间件写入的用户ID。
// 第二个返回值在中间件未运行或ID缺失时为false。
func CurrentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	return id, id != ""
}

func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
