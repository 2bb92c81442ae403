package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/events"
	"service-order-system/internal/listeners"
	"service-order-system/internal/repositories"
	"service-order-system/internal/routes"
	"service-order-system/pkg/config"
	"service-order-system/pkg/database/postgresql"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/eventbus"
	applogger "service-order-system/pkg/logger"
	appmiddleware "service-order-system/pkg/middleware"
	"service-order-system/pkg/service"
	"service-order-system/pkg/utils"
	"service-order-system/pkg/validation"
	"service-order-system/pkg/websocket"
)

const dashboardDebounce = 500 * time.Millisecond

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Server.LogFile)
	defer logger.Sync()

	loggers := &routes.Loggers{
		Main:      logger,
		Auth:      logger.Named("auth"),
		Order:     logger.Named("order"),
		Dashboard: logger.Named("dashboard"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// 3. Postgres, миграции, Redis
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к Postgres", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.RunMigrations {
		if err := postgresql.UpMigrations(ctx, dbConn, logger); err != nil {
			logger.Fatal("не удалось применить миграции", zap.Error(err))
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 4. Права, шина событий, сервисы
	gatekeeper := authz.NewGatekeeper(authz.NewEngine(), loggers.Auth)
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	authMW := appmiddleware.NewAuthMiddleware(jwtSvc, gatekeeper, loggers.Auth)

	bus := eventbus.New(logger.Named("eventbus"))
	svc := routes.NewServices(dbConn, redisClient, bus, gatekeeper, loggers, cfg)
	listeners.NewDashboardListener(svc.Dashboard, dashboardDebounce, loggers.Dashboard).Register(bus)

	hub := websocket.NewHub(logger.Named("ws"))
	listeners.NewWebSocketListener(hub, logger.Named("ws")).Register(bus)

	// 5. Фоновые задачи
	go hub.Run(ctx)
	go svc.Dashboard.RunRefresher(ctx)

	subscriber := repositories.NewOrderChangeSubscriber(dbConn, logger.Named("listen"))
	go func() {
		err := subscriber.SubscribeToChanges(ctx, func(change repositories.OrderChange) {
			bus.Publish(ctx, events.OrderChangedEvent{
				OrderID:   change.OrderID,
				Operation: change.Operation,
				Source:    events.SourceDatabase,
			})
		})
		if err != nil {
			logger.Error("Подписка на изменения заявок остановлена", zap.Error(err))
		}
	}()

	// 6. Маршруты
	routes.InitRouter(e, svc, authMW, gatekeeper, &routes.Realtime{
		Hub:            hub,
		JWT:            jwtSvc,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, loggers)

	// 7. Запуск и остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Получен сигнал остановки")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	bus.Wait()
	logger.Info("Сервер остановлен")
}
