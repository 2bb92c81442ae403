package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/dto"
	"service-order-system/pkg/constants"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/utils"
)

// AccessController отдаёт клиенту его маршруты и возможности.
// Роль берётся из токена, поэтому ответ не зависит от параметров запроса.
type AccessController struct {
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewAccessController(gatekeeper *authz.Gatekeeper, logger *zap.Logger) *AccessController {
	return &AccessController{gatekeeper: gatekeeper, logger: logger}
}

func (ctrl *AccessController) GetRoutes(c echo.Context) error {
	role, err := utils.GetRoleFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	engine := ctrl.gatekeeper.Engine()
	res := dto.AccessRoutesDTO{
		Role:         role,
		Known:        engine.IsKnown(role),
		Routes:       engine.GetPermittedRoutes(role),
		DefaultRoute: engine.GetDefaultRoute(role),
		Capabilities: engine.Capabilities(role),
	}
	if err := ctrl.gatekeeper.Check(role); err != nil {
		ctrl.logger.Warn("Запрос маршрутов с неизвестной ролью", zap.Error(err))
		res.Reason = err.Error()
	}
	return utils.SuccessResponse(c, res, "Маршруты роли получены", http.StatusOK)
}

func (ctrl *AccessController) CheckRoute(c echo.Context) error {
	route := c.QueryParam("route")
	if route == "" {
		return utils.ErrorResponse(c, apperrors.NewValidationError("route", "обязательное поле"), ctrl.logger)
	}

	role, err := utils.GetRoleFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res := dto.AccessCheckDTO{Route: route, Allowed: ctrl.gatekeeper.CanAccess(role, route)}
	return utils.SuccessResponse(c, res, "Проверка маршрута выполнена", http.StatusOK)
}

// GetStatuses — каталог статусов в порядке колонок.
func (ctrl *AccessController) GetStatuses(c echo.Context) error {
	return utils.SuccessResponse(c, constants.StatusCatalog(), "Каталог статусов получен", http.StatusOK)
}
