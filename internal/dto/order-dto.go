package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"service-order-system/internal/entities"
	"service-order-system/internal/pipeline"
	"service-order-system/pkg/constants"
)

// OrderDTO — заявка для ответа API: сущность + производные поля.
type OrderDTO struct {
	entities.ServiceOrder
	NetTotal       decimal.Decimal          `json:"net_total"`
	StatusLabel    string                   `json:"status_label"`
	StatusCategory constants.StatusCategory `json:"status_category"`
	Aging          pipeline.AgingResult     `json:"aging"`
}

func NewOrderDTO(o entities.ServiceOrder, now time.Time) OrderDTO {
	out := OrderDTO{
		ServiceOrder: o,
		NetTotal:     o.NetTotal(),
		Aging:        pipeline.Age(o.OpenedAt, now),
	}
	if info, ok := constants.LookupStatus(o.Status); ok {
		out.StatusLabel = info.Label
		out.StatusCategory = info.Category
	} else {
		out.StatusLabel = string(o.Status)
	}
	return out
}

// WithoutFinancials обнуляет суммы для ролей без доступа к финансам.
func (d OrderDTO) WithoutFinancials() OrderDTO {
	d.LaborValue = decimal.Zero
	d.PartsValue = decimal.Zero
	d.TravelValue = decimal.Zero
	d.NetTotal = decimal.Zero
	return d
}

// OrderCardDTO — короткая карточка для канбана и загрузки техников.
type OrderCardDTO struct {
	ID             uuid.UUID             `json:"id"`
	OrderNumber    string                `json:"order_number"`
	Type           constants.OrderType   `json:"type"`
	Status         constants.OrderStatus `json:"status"`
	ClientName     string                `json:"client_name"`
	MachineModel   string                `json:"machine_model"`
	TechnicianName *string               `json:"technician_name,omitempty"`
	OpenedAt       time.Time             `json:"opened_at"`
	Aging          pipeline.AgingResult  `json:"aging"`
}

func NewOrderCardDTO(o entities.ServiceOrder, now time.Time) OrderCardDTO {
	return OrderCardDTO{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Type:           o.Type,
		Status:         o.Status,
		ClientName:     o.ClientName,
		MachineModel:   o.MachineModel,
		TechnicianName: o.TechnicianName,
		OpenedAt:       o.OpenedAt,
		Aging:          pipeline.Age(o.OpenedAt, now),
	}
}

// UpdateOrderDTO — частичное обновление. Невалидные (отсутствующие) поля не меняются.
type UpdateOrderDTO struct {
	Status       null.String `json:"status" validate:"omitempty,order_status"`
	Type         null.String `json:"type" validate:"omitempty,order_type"`
	TechnicianID null.String `json:"technician_id" validate:"omitempty,uuid"`
	// Снять техника с заявки
	UnassignTechnician bool        `json:"unassign_technician"`
	ClientName         null.String `json:"client_name" validate:"omitempty,max=255"`
	MachineModel       null.String `json:"machine_model" validate:"omitempty,max=255"`
	Chassis            null.String `json:"chassis" validate:"omitempty,max=64"`
	ClosedAt           null.Time   `json:"closed_at"`
	InvoicedAt         null.Time   `json:"invoiced_at"`
	LaborValue         null.String `json:"labor_value" validate:"omitempty,decimal_gte0"`
	PartsValue         null.String `json:"parts_value" validate:"omitempty,decimal_gte0"`
	TravelValue        null.String `json:"travel_value" validate:"omitempty,decimal_gte0"`
}

func (d UpdateOrderDTO) ChangesStatus() bool {
	return d.Status.Valid
}

func (d UpdateOrderDTO) ChangesTechnician() bool {
	return d.TechnicianID.Valid || d.UnassignTechnician
}

func (d UpdateOrderDTO) ChangesFinancials() bool {
	return d.LaborValue.Valid || d.PartsValue.Valid || d.TravelValue.Valid
}

// ChangeStatusDTO — смена статуса без прочих правок (сценарий техника).
type ChangeStatusDTO struct {
	Status string `json:"status" validate:"required,order_status"`
}
