package middleware

import (
	"strings"

	"collab_backend/internal/auth"
	"collab_backend/internal/logger"
	"collab_backend/internal/models"
	"collab_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userID"
	roleKey   = "role"
	claimsKey = "claims"
)

// AuthMiddleware проверяет сессию: сначала cookie, затем Authorization: Bearer
func AuthMiddleware(tokens *auth.TokenManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := sessionToken(c, cookieName)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}

		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			logger.CtxDebug(c.Request.Context(), "Session rejected", "error", err.Error())
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid or expired session").WithError(err))
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Set(claimsKey, claims)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		ctx = logger.WithRole(ctx, string(claims.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// RequireRoles пропускает только перечисленные роли. Ставится после AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}
		if !roleSet[role] {
			logger.CtxWarn(c.Request.Context(), "Access denied: insufficient role",
				"role", role, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	s, _ := id.(string)
	return s
}

func GetRole(c *gin.Context) (models.UserRole, bool) {
	val, exists := c.Get(roleKey)
	if !exists {
		return "", false
	}
	role, ok := val.(models.UserRole)
	return role, ok
}

// GetPrincipal - проверенная сессия для предикатов доступа
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	userID := GetUserID(c)
	role, ok := GetRole(c)
	if userID == "" || !ok {
		return auth.Principal{}, false
	}
	return auth.Principal{UserID: userID, Role: role}, true
}

func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}
