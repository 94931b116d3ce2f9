package routes

import (
	_ "collab_backend/docs"
	"collab_backend/internal/handlers"
	"collab_backend/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupPublicRoutes - служебные маршруты без авторизации.
// Swagger UI отдается только вне production.
func SetupPublicRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, swagger bool) {
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
