package routes

import (
	"collab_backend/ws"

	"github.com/gin-gonic/gin"
)

func SetupWebSocketRoutes(r *gin.Engine, wsHandler *ws.WebSocketHandler, requireAuth gin.HandlerFunc) {
	// 💬 только авторизованные пользователи; события шлет Notifier
	r.GET("/ws", requireAuth, wsHandler.ServeWS)
}
