package routes

import (
	"collab_backend/internal/auth"
	"collab_backend/internal/handlers"
	"collab_backend/internal/logger"
	"collab_backend/internal/middleware"
	"collab_backend/internal/models"
	"collab_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	tokens *auth.TokenManager,
	cookieName string,
	swagger bool,
) {
	requireAuth := middleware.AuthMiddleware(tokens, cookieName)
	brandOnly := middleware.RequireRoles(models.UserRoleBrand)
	influencerOnly := middleware.RequireRoles(models.UserRoleInfluencer)
	adminOnly := middleware.RequireRoles(models.UserRoleAdmin)

	SetupPublicRoutes(ginRouter, appHandlers.HealthHandler, swagger)

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, requireAuth)
		appHandlers.InfluencerHandler.RegisterRoutes(api, requireAuth, influencerOnly)
		appHandlers.CampaignHandler.RegisterRoutes(api, requireAuth, brandOnly, influencerOnly)
		appHandlers.DiscoveryHandler.RegisterRoutes(api, requireAuth, brandOnly)
		appHandlers.DraftHandler.RegisterRoutes(api, requireAuth)
		appHandlers.AdminHandler.RegisterRoutes(api, requireAuth, adminOnly)
		appHandlers.UploadHandler.RegisterRoutes(api, requireAuth)
	}

	if wsHandler != nil {
		SetupWebSocketRoutes(ginRouter, wsHandler, requireAuth)
		logger.Info("WebSocket route /ws registered")
	}
}
