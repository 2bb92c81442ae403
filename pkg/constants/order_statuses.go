package constants

import (
	"fmt"
	"strings"
)

// OrderStatus — статус заявки (OS). Совпадает с кодами в БД.
type OrderStatus string

const (
	StatusActive                OrderStatus = "ACTIVE"
	StatusWaitingParts          OrderStatus = "WAITING_PARTS"
	StatusWaitingBudgetApproval OrderStatus = "WAITING_BUDGET_APPROVAL"
	StatusWaitingPartsOrder     OrderStatus = "WAITING_PARTS_ORDER"
	StatusWaitingPayment        OrderStatus = "WAITING_PAYMENT"
	StatusPaused                OrderStatus = "PAUSED"
	StatusCompleted             OrderStatus = "COMPLETED"
	StatusCancelled             OrderStatus = "CANCELLED"
	StatusInvoiced              OrderStatus = "INVOICED"
)

// StatusCategory — операционная категория статуса.
type StatusCategory string

const (
	CategoryActive    StatusCategory = "active"
	CategoryWaiting   StatusCategory = "waiting"
	CategoryPaused    StatusCategory = "paused"
	CategoryTerminal  StatusCategory = "terminal"
	CategoryCancelled StatusCategory = "cancelled"
)

type StatusInfo struct {
	Status   OrderStatus    `json:"status"`
	Category StatusCategory `json:"category"`
	Label    string         `json:"label"`
	Color    string         `json:"color"`
}

// Порядок важен: это порядок колонок пайплайна и легенды, а не приоритет.
var statusCatalog = []StatusInfo{
	{Status: StatusActive, Category: CategoryActive, Label: "Em execução", Color: "#2563eb"},
	{Status: StatusWaitingParts, Category: CategoryWaiting, Label: "Aguardando peças", Color: "#f59e0b"},
	{Status: StatusWaitingBudgetApproval, Category: CategoryWaiting, Label: "Aguardando aprovação de orçamento", Color: "#eab308"},
	{Status: StatusWaitingPartsOrder, Category: CategoryWaiting, Label: "Aguardando pedido de peças", Color: "#f97316"},
	{Status: StatusWaitingPayment, Category: CategoryWaiting, Label: "Aguardando pagamento", Color: "#a855f7"},
	{Status: StatusPaused, Category: CategoryPaused, Label: "Pausada", Color: "#6b7280"},
	{Status: StatusCompleted, Category: CategoryTerminal, Label: "Concluída", Color: "#16a34a"},
	{Status: StatusCancelled, Category: CategoryCancelled, Label: "Cancelada", Color: "#dc2626"},
	{Status: StatusInvoiced, Category: CategoryTerminal, Label: "Faturada", Color: "#0d9488"},
}

var statusIndex = func() map[OrderStatus]StatusInfo {
	m := make(map[OrderStatus]StatusInfo, len(statusCatalog))
	for _, info := range statusCatalog {
		m[info.Status] = info
	}
	return m
}()

// StatusCatalog возвращает копию каталога в порядке отображения.
func StatusCatalog() []StatusInfo {
	out := make([]StatusInfo, len(statusCatalog))
	copy(out, statusCatalog)
	return out
}

// PipelineStages — колонки канбана: весь каталог, кроме отменённых.
func PipelineStages() []StatusInfo {
	out := make([]StatusInfo, 0, len(statusCatalog))
	for _, info := range statusCatalog {
		if info.Category == CategoryCancelled {
			continue
		}
		out = append(out, info)
	}
	return out
}

func LookupStatus(s OrderStatus) (StatusInfo, bool) {
	info, ok := statusIndex[s]
	return info, ok
}

func (s OrderStatus) IsValid() bool {
	_, ok := statusIndex[s]
	return ok
}

func (s OrderStatus) Category() StatusCategory {
	return statusIndex[s].Category
}

func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus разбирает код статуса на входе в систему.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("неизвестный статус заявки: %q", raw)
	}
	return s, nil
}

// Финальные статусы: заявка по соглашению больше не редактируется.
var FinalStatuses = []OrderStatus{
	StatusCancelled,
	StatusInvoiced,
}

func IsFinalStatus(s OrderStatus) bool {
	for _, f := range FinalStatuses {
		if f == s {
			return true
		}
	}
	return false
}

// IsOpenStatus — заявка ещё в работе (не завершена и не отменена).
func IsOpenStatus(s OrderStatus) bool {
	switch s.Category() {
	case CategoryActive, CategoryWaiting, CategoryPaused:
		return true
	}
	return false
}

// OrderType — тип заявки.
type OrderType string

const (
	OrderTypeNormal   OrderType = "NORMAL"
	OrderTypeWarranty OrderType = "WARRANTY"
)

func (t OrderType) IsValid() bool {
	return t == OrderTypeNormal || t == OrderTypeWarranty
}
