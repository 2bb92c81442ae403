package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/services"
	"service-order-system/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
	}
}

// GetKPIs отдаёт 200 и при устаревших данных: клиент смотрит на поле stale.
func (ctrl *DashboardController) GetKPIs(c echo.Context) error {
	stats, err := ctrl.dashboardService.GetKPIs(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	message := "Показатели дашборда получены"
	if stats.Stale {
		message = "Показатели устарели, показан последний удачный расчёт"
	}
	return utils.SuccessResponse(c, stats, message, http.StatusOK)
}
