package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/service"
	"service-order-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, gatekeeper *authz.Gatekeeper, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		gatekeeper: gatekeeper,
		logger:     logger,
	}
}

// Auth проверяет bearer-токен и кладёт пользователя и роль в контекст.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: некорректный user_id в токене", zap.String("userID", claims.UserID))
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		// Роль с кривым форматом — это испорченный токен, а незнакомая роль
		// проходит дальше и просто не получает прав.
		role, err := authz.ParseRole(claims.Role)
		if err != nil {
			m.logger.Warn("AuthMiddleware: некорректная роль в токене", zap.String("role", claims.Role))
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		ctx := utils.WithIdentity(c.Request().Context(), userID, role)
		c.SetRequest(c.Request().WithContext(ctx))

		m.logger.Debug("AuthMiddleware: Пользователь аутентифицирован",
			zap.String("userID", userID.String()), zap.String("role", string(role)))

		return next(c)
	}
}

// RequireRoute пропускает запрос, только если роли открыт маршрут интерфейса.
func (m *AuthMiddleware) RequireRoute(route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !m.gatekeeper.CanAccess(role, route) {
				m.logger.Info("Доступ к маршруту запрещён",
					zap.String("role", string(role)), zap.String("route", route))
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}

// RequireCapability пропускает запрос, только если у роли есть возможность.
func (m *AuthMiddleware) RequireCapability(capability authz.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !m.gatekeeper.Can(role, capability) {
				m.logger.Info("Действие запрещено",
					zap.String("role", string(role)), zap.String("capability", string(capability)))
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}
