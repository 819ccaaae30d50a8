package middleware

import (
	"strings"

	"tawzif_backend/internal/auth"
	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/models"
	"tawzif_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware требует валидный Bearer-токен
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		claims, err := verifier.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware - гость проходит как есть, невалидный токен игнорируется
func OptionalAuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr, ok := bearerToken(c); ok {
			if claims, err := verifier.ParseToken(tokenStr); err == nil {
				setClaims(c, claims)
			} else {
				logger.CtxDebug(c.Request.Context(), "optional auth: token ignored", "error", err.Error())
			}
		}
		c.Next()
	}
}

// RequireRoles пропускает только перечисленные роли
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role := models.UserRole(c.GetString("role"))
		if role == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("authentication required"))
			c.Abort()
			return
		}
		if !roleSet[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set("userID", claims.UserID())
	c.Set("role", claims.Role)
	c.Set("name", claims.Name)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID()))
}
