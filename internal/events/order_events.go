package events

import "github.com/google/uuid"

const OrderChangedEventName = "order.changed"

// Источники изменения заявки.
const (
	SourceAPI      = "api"
	SourceDatabase = "database"
)

// OrderChangedEvent — заявка создана, изменена или удалена.
type OrderChangedEvent struct {
	OrderID   uuid.UUID
	Operation string
	Source    string
}

func (e OrderChangedEvent) Name() string {
	return OrderChangedEventName
}
