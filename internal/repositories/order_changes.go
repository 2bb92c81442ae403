package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"service-order-system/pkg/constants"
)

// OrderChange — уведомление триггера service_orders_notify.
type OrderChange struct {
	OrderID   uuid.UUID `json:"id"`
	Operation string    `json:"op"`
}

type OrderChangeSubscriberInterface interface {
	// SubscribeToChanges блокируется до отмены ctx и вызывает fn на каждое изменение.
	SubscribeToChanges(ctx context.Context, fn func(OrderChange)) error
}

type OrderChangeSubscriber struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
	backoff func() retry.Backoff
}

func NewOrderChangeSubscriber(storage *pgxpool.Pool, logger *zap.Logger) OrderChangeSubscriberInterface {
	return &OrderChangeSubscriber{
		storage: storage,
		logger:  logger,
		backoff: func() retry.Backoff {
			return retry.WithCappedDuration(time.Minute, retry.NewExponential(time.Second))
		},
	}
}

func parseOrderChange(payload string) (OrderChange, error) {
	var change OrderChange
	if err := json.Unmarshal([]byte(payload), &change); err != nil {
		return change, fmt.Errorf("некорректное уведомление %q: %w", payload, err)
	}
	return change, nil
}

// SubscribeToChanges держит отдельное соединение с LISTEN и переподключается
// с экспоненциальной задержкой при обрыве.
func (s *OrderChangeSubscriber) SubscribeToChanges(ctx context.Context, fn func(OrderChange)) error {
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		err := s.listen(ctx, fn)
		if err == nil || ctx.Err() != nil {
			return err
		}
		s.logger.Warn("Подписка на изменения заявок прервана, переподключение", zap.Error(err))
		return retry.RetryableError(err)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *OrderChangeSubscriber) listen(ctx context.Context, fn func(OrderChange)) error {
	conn, err := s.storage.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("не удалось получить соединение для LISTEN: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), "UNLISTEN *")
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{constants.OrderChangesChannel}.Sanitize()); err != nil {
		return fmt.Errorf("LISTEN %s: %w", constants.OrderChangesChannel, err)
	}
	s.logger.Info("Подписка на изменения заявок активна", zap.String("channel", constants.OrderChangesChannel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		change, err := parseOrderChange(notification.Payload)
		if err != nil {
			s.logger.Warn("Пропущено уведомление об изменении заявки", zap.Error(err))
			continue
		}
		fn(change)
	}
}
