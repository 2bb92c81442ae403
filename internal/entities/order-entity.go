package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"service-order-system/pkg/constants"
	"service-order-system/pkg/types"
)

// ServiceOrder — заявка на сервис (OS).
// Статус хранится как сырой код: значения вне каталога не теряются при чтении.
type ServiceOrder struct {
	ID             uuid.UUID             `json:"id" db:"id"`
	OrderNumber    string                `json:"order_number" db:"order_number"`
	Type           constants.OrderType   `json:"type" db:"type"`
	Status         constants.OrderStatus `json:"status" db:"status"`
	OpenedAt       time.Time             `json:"opened_at" db:"opened_at"`
	ClosedAt       *time.Time            `json:"closed_at" db:"closed_at"`
	InvoicedAt     *time.Time            `json:"invoiced_at" db:"invoiced_at"`
	TechnicianID   *uuid.UUID            `json:"technician_id" db:"technician_id"`
	TechnicianName *string               `json:"technician_name,omitempty" db:"technician_name"`
	ConsultantID   *uuid.UUID            `json:"consultant_id" db:"consultant_id"`
	ClientName     string                `json:"client_name" db:"client_name"`
	MachineModel   string                `json:"machine_model" db:"machine_model"`
	Chassis        string                `json:"chassis" db:"chassis"`
	LaborValue     decimal.Decimal       `json:"labor_value" db:"labor_value"`
	PartsValue     decimal.Decimal       `json:"parts_value" db:"parts_value"`
	TravelValue    decimal.Decimal       `json:"travel_value" db:"travel_value"`

	types.BaseEntity
}

// NetTotal = труд + запчасти + выезд.
func (o ServiceOrder) NetTotal() decimal.Decimal {
	return o.LaborValue.Add(o.PartsValue).Add(o.TravelValue)
}

func (o ServiceOrder) IsInvoiced() bool {
	return o.InvoicedAt != nil
}

func (o ServiceOrder) AssignedTo(technicianID uuid.UUID) bool {
	return o.TechnicianID != nil && *o.TechnicianID == technicianID
}

// ApplyStatus меняет статус. Единственное жёсткое правило жизненного цикла:
// при переходе в INVOICED без invoiced_at ставится текущее время.
// Остальные переходы не ограничиваются.
func (o *ServiceOrder) ApplyStatus(status constants.OrderStatus, now time.Time) {
	o.Status = status
	if status == constants.StatusInvoiced && o.InvoicedAt == nil {
		stamped := now
		o.InvoicedAt = &stamped
	}
}
