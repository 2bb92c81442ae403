package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/types"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// PaginatedResponse — список с метаданными страницы.
func PaginatedResponse(ctx echo.Context, body interface{}, message string, total, page, limit uint64) error {
	resp := &types.ResponsePagination{
		Status:     true,
		Body:       body,
		Message:    message,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}
	if limit > 0 {
		resp.TotalPages = (total + limit - 1) / limit
	}
	return ctx.JSON(http.StatusOK, resp)
}

// StatusCode сопоставляет ошибку приложения с HTTP-кодом.
func StatusCode(err error) int {
	var (
		httpErr       *apperrors.HttpError
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		conflictErr   *apperrors.ConflictError
		externalErr   *apperrors.ExternalServiceError
	)

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &validationErr), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrInvalidSigningMethod),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenNotYetValid),
		errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrUserIDNotFoundInContext),
		errors.Is(err, apperrors.ErrRoleNotFoundInContext):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &notFoundErr), errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflictErr), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &externalErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code := StatusCode(err)
	message := err.Error()

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		message = httpErr.Message
	}

	switch {
	case code >= http.StatusInternalServerError && code != http.StatusBadGateway && code != http.StatusGatewayTimeout:
		logger.Error("Unexpected Error", zap.Error(err))
		message = "Внутренняя ошибка сервера"
	case code >= http.StatusBadGateway:
		logger.Error("Ошибка внешнего хранилища", zap.Int("code", code), zap.Error(err))
	default:
		logger.Debug("Ошибка запроса", zap.Int("code", code), zap.Error(err))
	}

	response := map[string]interface{}{
		"status":  false,
		"message": message,
	}
	if httpErr != nil && httpErr.Details != nil {
		response["body"] = httpErr.Details
	}
	return c.JSON(code, response)
}
