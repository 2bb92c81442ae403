package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/controllers"
	"service-order-system/pkg/service"
	"service-order-system/pkg/websocket"
)

// runWebSocketRouter вешается на /api без Auth: токен проверяет сам контроллер.
func runWebSocketRouter(api *echo.Group, hub *websocket.Hub, jwtSvc service.JWTService, allowedOrigins []string, logger *zap.Logger) {
	wsCtrl := controllers.NewWebSocketController(hub, jwtSvc, allowedOrigins, logger)
	api.GET("/ws", wsCtrl.ServeWs)
}
