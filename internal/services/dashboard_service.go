package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"service-order-system/internal/dto"
	"service-order-system/internal/pipeline"
	"service-order-system/internal/repositories"
	"service-order-system/pkg/config"
	"service-order-system/pkg/constants"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/types"
)

type DashboardServiceInterface interface {
	GetKPIs(ctx context.Context) (*dto.DashboardDTO, error)
	Invalidate(ctx context.Context) error
	RunRefresher(ctx context.Context)
}

// DashboardService считает KPI из одной выборки заявок.
// Свежий результат живёт в Redis cfg.StaleTime, последний удачный хранится в памяти
// и отдаётся с пометкой stale, если загрузка не удалась.
type DashboardService struct {
	orderRepo      repositories.OrderRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	cache          repositories.CacheRepositoryInterface
	cfg            config.DashboardConfig
	logger         *zap.Logger
	now            func() time.Time

	mu         sync.RWMutex
	lastGood   *types.DashboardSnapshot
	lastViewed time.Time
}

func NewDashboardService(
	orderRepo repositories.OrderRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	cfg config.DashboardConfig,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		orderRepo:      orderRepo,
		technicianRepo: technicianRepo,
		cache:          cache,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

func dashboardCacheKey() string {
	return fmt.Sprintf(constants.CacheKeyDashboardKPIs, types.OrderFilter{}.CacheKey())
}

func (s *DashboardService) GetKPIs(ctx context.Context) (*dto.DashboardDTO, error) {
	s.markViewed()

	if snapshot, ok := s.fromCache(ctx); ok {
		return &dto.DashboardDTO{DashboardSnapshot: *snapshot}, nil
	}

	snapshot, err := s.refresh(ctx)
	if err != nil {
		if last := s.lastSnapshot(); last != nil {
			s.logger.Warn("Отдаём последний удачный расчёт KPI", zap.Error(err))
			return &dto.DashboardDTO{DashboardSnapshot: *last, Stale: true, Error: err.Error()}, nil
		}
		return nil, err
	}
	return &dto.DashboardDTO{DashboardSnapshot: *snapshot}, nil
}

// Invalidate сбрасывает кеш. Копия в памяти остаётся запасной.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	_, err := s.cache.DelPattern(ctx, constants.CacheKeyDashboardKPIsPattern)
	return err
}

// RunRefresher пересчитывает KPI раз в cfg.RefreshInterval,
// пока дашборд открыт (запрашивался за последний интервал). Блокируется до отмены ctx.
func (s *DashboardService) RunRefresher(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.isVisible() {
				continue
			}
			if _, err := s.refresh(ctx); err != nil {
				s.logger.Error("Фоновое обновление KPI не удалось", zap.Error(err))
			}
		}
	}
}

func (s *DashboardService) markViewed() {
	s.mu.Lock()
	s.lastViewed = s.now()
	s.mu.Unlock()
}

func (s *DashboardService) isVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.lastViewed.IsZero() && s.now().Sub(s.lastViewed) <= s.cfg.RefreshInterval
}

func (s *DashboardService) lastSnapshot() *types.DashboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastGood
}

func (s *DashboardService) fromCache(ctx context.Context) (*types.DashboardSnapshot, bool) {
	raw, err := s.cache.Get(ctx, dashboardCacheKey())
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("Кеш KPI недоступен", zap.Error(err))
		}
		return nil, false
	}

	var snapshot types.DashboardSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.logger.Warn("Повреждённая запись KPI в кеше", zap.Error(err))
		return nil, false
	}
	return &snapshot, true
}

// refresh загружает данные с повторами, считает KPI и обновляет обе копии.
func (s *DashboardService) refresh(ctx context.Context) (*types.DashboardSnapshot, error) {
	var snapshot types.DashboardSnapshot

	backoff := retry.WithMaxRetries(retriesFor(s.cfg.FetchAttempts), retry.NewConstant(s.cfg.RetryBackoff))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		snap, err := s.fetchWithTimeout(ctx)
		if err != nil {
			s.logger.Warn("Попытка загрузки KPI не удалась", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		snapshot = snap
		return nil
	})
	if err != nil {
		s.logger.Error("Загрузка KPI не удалась", zap.Int("attempts", attempt), zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.lastGood = &snapshot
	s.mu.Unlock()

	if payload, err := json.Marshal(snapshot); err == nil {
		if err := s.cache.Set(ctx, dashboardCacheKey(), payload, s.cfg.StaleTime); err != nil {
			s.logger.Warn("Не удалось записать KPI в кеш", zap.Error(err))
		}
	}
	return &snapshot, nil
}

type snapshotResult struct {
	snapshot types.DashboardSnapshot
	err      error
}

// fetchWithTimeout ограничивает одну попытку cfg.FetchTimeout.
// Ошибка таймаута возвращается, даже если хранилище так и не ответило.
func (s *DashboardService) fetchWithTimeout(ctx context.Context) (types.DashboardSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	done := make(chan snapshotResult, 1)
	go func() {
		orders, technicians, err := fetchOrdersAndTechnicians(ctx, s.orderRepo, s.technicianRepo, types.OrderFilter{})
		if err != nil {
			done <- snapshotResult{err: err}
			return
		}
		done <- snapshotResult{snapshot: pipeline.Snapshot(orders, technicians, s.now(), s.cfg.TopTechnicians)}
	}()

	select {
	case res := <-done:
		return res.snapshot, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return types.DashboardSnapshot{}, apperrors.NewExternalServiceError("dashboard.fetch",
				fmt.Errorf("нет ответа за %s: %w", s.cfg.FetchTimeout, apperrors.ErrTimeout))
		}
		return types.DashboardSnapshot{}, ctx.Err()
	}
}

// retriesFor переводит число попыток в число повторов для go-retry.
func retriesFor(attempts uint64) uint64 {
	if attempts <= 1 {
		return 0
	}
	return attempts - 1
}
