package listeners

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"service-order-system/internal/events"
	"service-order-system/pkg/eventbus"
)

// DashboardInvalidator — то, что умеет сбросить кеш KPI.
type DashboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

// DashboardListener сбрасывает кеш дашборда при изменениях заявок.
// Пачка событий за окно debounce даёт один сброс.
type DashboardListener struct {
	invalidator DashboardInvalidator
	debounce    time.Duration
	logger      *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending int
}

func NewDashboardListener(invalidator DashboardInvalidator, debounce time.Duration, logger *zap.Logger) *DashboardListener {
	return &DashboardListener{
		invalidator: invalidator,
		debounce:    debounce,
		logger:      logger,
	}
}

func (l *DashboardListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderChangedEventName, l.handleOrderChanged)
	l.logger.Info("DashboardListener подписан на событие", zap.String("event", events.OrderChangedEventName))
}

func (l *DashboardListener) handleOrderChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderChangedEvent)
	if !ok {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending++
	if l.timer == nil {
		l.timer = time.AfterFunc(l.debounce, l.flush)
	}
	l.logger.Debug("Изменение заявки поставлено в очередь сброса кеша",
		zap.String("orderID", e.OrderID.String()),
		zap.String("source", e.Source),
		zap.Int("pending", l.pending))
	return nil
}

func (l *DashboardListener) flush() {
	l.mu.Lock()
	pending := l.pending
	l.pending = 0
	l.timer = nil
	l.mu.Unlock()

	if pending == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := l.invalidator.Invalidate(ctx); err != nil {
		l.logger.Error("Не удалось сбросить кеш дашборда", zap.Error(err))
		return
	}
	l.logger.Info("Кеш дашборда сброшен", zap.Int("changes", pending))
}
