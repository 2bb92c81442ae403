package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/controllers"
	"service-order-system/internal/services"
	"service-order-system/pkg/middleware"
)

func runOrderRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	orderCtrl := controllers.NewOrderController(orderService, logger)
	{
		secureGroup.GET("/orders", orderCtrl.GetOrders, authMW.RequireRoute(authz.RouteOrders))
		secureGroup.GET("/orders/:id", orderCtrl.FindOrder, authMW.RequireRoute(authz.RouteOrderDetails))
		secureGroup.PUT("/orders/:id", orderCtrl.UpdateOrder,
			authMW.RequireRoute(authz.RouteOrderEdit),
			authMW.RequireCapability(authz.CapEditOrder),
		)
		secureGroup.PUT("/orders/:id/status", orderCtrl.ChangeStatus,
			authMW.RequireRoute(authz.RouteOrderDetails),
			authMW.RequireCapability(authz.CapChangeStatus),
		)
	}
}
