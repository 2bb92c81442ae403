package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Итоги по одному типу заявок (NORMAL / WARRANTY)
type DashboardTypeTotals struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// KPI по не выставленным в счёт заявкам
type DashboardKPIs struct {
	OpenOrders        int64               `json:"open_orders"`
	Normal            DashboardTypeTotals `json:"normal"`
	Warranty          DashboardTypeTotals `json:"warranty"`
	CombinedTotal     decimal.Decimal     `json:"combined_total"`
	AvgResolutionDays float64             `json:"avg_resolution_days"`
}

// Alerts
type DashboardAlerts struct {
	CriticalCount   int64   `json:"critical_count"`
	UrgentCount     int64   `json:"urgent_count"`
	AverageAgeDays  float64 `json:"average_age_days"`
	ElevatedAverage bool    `json:"elevated_average"`
}

type DashboardCountByGroup struct {
	GroupName string `json:"group_name" db:"group_name"`
	Count     int64  `json:"count" db:"count"`
}

type DashboardTechnicianRank struct {
	TechnicianID uuid.UUID `json:"technician_id"`
	Name         string    `json:"name"`
	Count        int64     `json:"count"`
}

// DashboardSnapshot — всё, что считается из одной выборки заявок.
type DashboardSnapshot struct {
	KPIs           DashboardKPIs             `json:"kpis"`
	Alerts         DashboardAlerts           `json:"alerts"`
	CountByStatus  []DashboardCountByGroup   `json:"count_by_status"`
	TopTechnicians []DashboardTechnicianRank `json:"top_technicians"`
	ComputedAt     time.Time                 `json:"computed_at"`
}
