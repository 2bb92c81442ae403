package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/controllers"
	"service-order-system/internal/services"
	"service-order-system/pkg/middleware"
)

func runTechnicianRouter(secureGroup *echo.Group, technicianService services.TechnicianServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	technicianCtrl := controllers.NewTechnicianController(technicianService, logger)
	{
		secureGroup.GET("/technicians", technicianCtrl.GetTechnicians, authMW.RequireRoute(authz.RouteTechnicians))
		secureGroup.POST("/technicians", technicianCtrl.CreateTechnician, authMW.RequireCapability(authz.CapManageUsers))
	}
}
