package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/repositories"
	"service-order-system/internal/services"
	"service-order-system/pkg/config"
	"service-order-system/pkg/middleware"
	"service-order-system/pkg/service"
	"service-order-system/pkg/websocket"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Order     *zap.Logger
	Dashboard *zap.Logger
}

// Services — всё, что нужно роутерам. В тестах заполняется заглушками.
type Services struct {
	Orders      services.OrderServiceInterface
	Pipeline    services.PipelineServiceInterface
	Dashboard   services.DashboardServiceInterface
	Technicians services.TechnicianServiceInterface
}

// NewServices собирает репозитории и сервисы поверх пула Postgres и Redis.
func NewServices(
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	publisher services.EventPublisher,
	gatekeeper *authz.Gatekeeper,
	loggers *Loggers,
	cfg *config.Config,
) *Services {
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(dbConn, loggers.Order)
	technicianRepo := repositories.NewTechnicianRepository(dbConn, loggers.Main)
	userRepo := repositories.NewUserRepository(dbConn, loggers.Main)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	return &Services{
		Orders: services.NewOrderService(
			orderRepo, technicianRepo, txManager, gatekeeper, publisher, cfg.Orders, loggers.Order,
		),
		Pipeline:    services.NewPipelineService(orderRepo, technicianRepo, loggers.Order),
		Dashboard:   services.NewDashboardService(orderRepo, technicianRepo, cacheRepo, cfg.Dashboard, loggers.Dashboard),
		Technicians: services.NewTechnicianService(technicianRepo, userRepo, loggers.Main),
	}
}

// Realtime — push-канал изменений. Nil отключает /api/ws.
type Realtime struct {
	Hub            *websocket.Hub
	JWT            service.JWTService
	AllowedOrigins []string
}

func InitRouter(e *echo.Echo, svc *Services, authMW *middleware.AuthMiddleware, gatekeeper *authz.Gatekeeper, realtime *Realtime, loggers *Loggers) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	if realtime != nil {
		runWebSocketRouter(api, realtime.Hub, realtime.JWT, realtime.AllowedOrigins, loggers.Main)
	}

	secureGroup := api.Group("", authMW.Auth)

	runAccessRouter(secureGroup, gatekeeper, loggers.Auth)
	runOrderRouter(secureGroup, svc.Orders, loggers.Order, authMW)
	runPipelineRouter(secureGroup, svc.Pipeline, loggers.Order, authMW)
	runDashboardRouter(secureGroup, svc.Dashboard, loggers.Dashboard, authMW)
	runTechnicianRouter(secureGroup, svc.Technicians, loggers.Main, authMW)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}
