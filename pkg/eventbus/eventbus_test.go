package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_DeliversToSubscribersOfEvent(t *testing.T) {
	bus := New(zap.NewNop())

	var hits, other int32
	bus.Subscribe("order.changed", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&hits, 1)
		return nil
	})
	bus.Subscribe("order.changed", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&hits, 1)
		return nil
	})
	bus.Subscribe("something.else", func(ctx context.Context, e Event) error {
		atomic.AddInt32(&other, 1)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "order.changed"})
	bus.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Equal(t, int32(0), atomic.LoadInt32(&other))
}

func TestBus_LogsListenerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := New(zap.New(core))

	bus.Subscribe("order.changed", func(ctx context.Context, e Event) error {
		return errors.New("redis недоступен")
	})
	bus.Publish(context.Background(), testEvent{name: "order.changed"})
	bus.Wait()

	assert.Equal(t, 1, logs.FilterMessage("Ошибка в обработчике события").Len())
}
