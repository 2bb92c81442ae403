package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/dto"
	"service-order-system/internal/services"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/utils"
)

type TechnicianController struct {
	technicianService services.TechnicianServiceInterface
	logger            *zap.Logger
}

func NewTechnicianController(ts services.TechnicianServiceInterface, logger *zap.Logger) *TechnicianController {
	return &TechnicianController{technicianService: ts, logger: logger}
}

func (ctrl *TechnicianController) GetTechnicians(c echo.Context) error {
	res, err := ctrl.technicianService.GetTechnicians(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Список техников получен", http.StatusOK)
}

func (ctrl *TechnicianController) CreateTechnician(c echo.Context) error {
	var payload dto.CreateTechnicianDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Debug("CreateTechnician: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.technicianService.CreateTechnician(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Техник создан", http.StatusCreated)
}
