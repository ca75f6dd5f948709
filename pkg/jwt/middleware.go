package jwt

import (
	"strings"

	"mentorship-system/internal/model"
	"mentorship-system/pkg/logger"
	"mentorship-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ContextAccountIDKey 账号ID在gin.Context中的键名
	ContextAccountIDKey = "account_id"
	// ContextRoleKey 角色在gin.Context中的键名
	ContextRoleKey = "role"
)

// AuthMiddleware JWT认证中间件
// 从请求头中提取Authorization: Bearer <token>
// 验证token并将账号信息存入gin.Context
func (s *JWTService) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Not authenticated")
			return
		}

		// 检查Bearer前缀
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization header must be Bearer <token>")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := s.ValidateToken(tokenString)
		if err != nil {
			logger.Warn("JWT验证失败",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			response.Unauthorized(c, "Could not validate credentials")
			return
		}

		accountID, err := claims.AccountID()
		if err != nil {
			response.Unauthorized(c, "Could not validate credentials")
			return
		}

		c.Set(ContextAccountIDKey, accountID)
		c.Set(ContextRoleKey, claims.Role())

		logger.Debug("账号访问接口",
			zap.Uint("account_id", accountID),
			zap.String("role", string(claims.Role())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// RequireRole 要求调用方为指定角色（需在AuthMiddleware之后使用）
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			response.Forbidden(c, "Not allowed for role "+string(GetRole(c)))
			return
		}
		c.Next()
	}
}

// GetAccountID 从gin.Context中获取账号ID
func GetAccountID(c *gin.Context) uint {
	if v, exists := c.Get(ContextAccountIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetRole 从gin.Context中获取角色
func GetRole(c *gin.Context) model.Role {
	if v, exists := c.Get(ContextRoleKey); exists {
		if role, ok := v.(model.Role); ok {
			return role
		}
	}
	return ""
}
