package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/controllers"
	"service-order-system/internal/services"
	"service-order-system/pkg/middleware"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	secureGroup.GET("/dashboard/kpis", dashboardCtrl.GetKPIs, authMW.RequireRoute(authz.RouteDashboard))
}
