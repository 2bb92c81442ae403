package listeners

import (
	"context"

	"go.uber.org/zap"

	"service-order-system/internal/events"
	"service-order-system/pkg/eventbus"
	"service-order-system/pkg/websocket"
)

// Broadcaster — часть websocket.Hub, нужная слушателю.
type Broadcaster interface {
	Broadcast(messageType string, payload interface{}) error
}

// WebSocketListener пересылает изменения заявок подключённым браузерам.
type WebSocketListener struct {
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewWebSocketListener(broadcaster Broadcaster, logger *zap.Logger) *WebSocketListener {
	return &WebSocketListener{broadcaster: broadcaster, logger: logger}
}

func (l *WebSocketListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderChangedEventName, l.handleOrderChanged)
}

func (l *WebSocketListener) handleOrderChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderChangedEvent)
	if !ok {
		return nil
	}
	// Правки через API повторно приходят из триггера БД, в браузер уходит только запись ленты.
	if e.Source != events.SourceDatabase {
		return nil
	}
	return l.broadcaster.Broadcast(websocket.MessageOrdersChanged, websocket.OrderChangedPayload{
		OrderID:   e.OrderID.String(),
		Operation: e.Operation,
		Source:    e.Source,
	})
}
