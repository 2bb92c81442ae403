package websocket

import "time"

const MessageOrdersChanged = "orders.changed"

// Envelope — конверт сообщения. По type фронтенд решает, что перезапросить.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// OrderChangedPayload — какая заявка изменилась. Сами данные клиент перечитывает через API.
type OrderChangedPayload struct {
	OrderID   string `json:"order_id"`
	Operation string `json:"op"`
	Source    string `json:"source"`
}
