package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/controllers"
	"service-order-system/internal/services"
	"service-order-system/pkg/middleware"
)

func runPipelineRouter(secureGroup *echo.Group, pipelineService services.PipelineServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	pipelineCtrl := controllers.NewPipelineController(pipelineService, logger)
	secureGroup.GET("/pipeline", pipelineCtrl.GetPipeline, authMW.RequireRoute(authz.RoutePipeline))
}
