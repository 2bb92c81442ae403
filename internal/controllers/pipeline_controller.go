package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/services"
	"service-order-system/pkg/utils"
)

type PipelineController struct {
	pipelineService services.PipelineServiceInterface
	logger          *zap.Logger
}

func NewPipelineController(ps services.PipelineServiceInterface, logger *zap.Logger) *PipelineController {
	return &PipelineController{pipelineService: ps, logger: logger}
}

// GetPipeline принимает те же фильтры, что и список заявок, без пагинации.
func (ctrl *PipelineController) GetPipeline(c echo.Context) error {
	filter, err := utils.ParseOrderFilter(c.Request().URL.Query())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.pipelineService.GetPipeline(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Канбан заявок получен", http.StatusOK)
}
