package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/controllers"
)

func runAccessRouter(secureGroup *echo.Group, gatekeeper *authz.Gatekeeper, logger *zap.Logger) {
	accessCtrl := controllers.NewAccessController(gatekeeper, logger)
	{
		secureGroup.GET("/access/routes", accessCtrl.GetRoutes)
		secureGroup.GET("/access/check", accessCtrl.CheckRoute)
		secureGroup.GET("/statuses", accessCtrl.GetStatuses)
	}
}
