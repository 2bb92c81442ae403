package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"service-order-system/internal/entities"
	"service-order-system/pkg/constants"
	"service-order-system/pkg/types"
)

// ComputeKPIs считает сводку по заявкам без invoiced_at.
// Среднее время решения считается по всем закрытым заявкам за окно ResolutionLookback.
func ComputeKPIs(orders []entities.ServiceOrder, now time.Time) types.DashboardKPIs {
	kpis := types.DashboardKPIs{
		Normal:        types.DashboardTypeTotals{Total: decimal.Zero},
		Warranty:      types.DashboardTypeTotals{Total: decimal.Zero},
		CombinedTotal: decimal.Zero,
	}

	for _, o := range orders {
		if o.IsInvoiced() {
			continue
		}
		kpis.OpenOrders++

		switch o.Type {
		case constants.OrderTypeNormal:
			kpis.Normal.Count++
			kpis.Normal.Total = kpis.Normal.Total.Add(o.NetTotal())
		case constants.OrderTypeWarranty:
			kpis.Warranty.Count++
			kpis.Warranty.Total = kpis.Warranty.Total.Add(o.NetTotal())
		}
	}

	kpis.CombinedTotal = kpis.Normal.Total.Add(kpis.Warranty.Total)
	kpis.AvgResolutionDays = AverageResolutionDays(orders, now)
	return kpis
}

// AverageResolutionDays — среднее (closed_at - opened_at) в днях, округлённое до 0.1.
// Пустая выборка даёт ровно 0.
func AverageResolutionDays(orders []entities.ServiceOrder, now time.Time) float64 {
	since := now.Add(-constants.ResolutionLookback)

	var sum float64
	n := 0
	for _, o := range orders {
		if o.ClosedAt == nil || o.OpenedAt.Before(since) {
			continue
		}
		ms := o.ClosedAt.UnixMilli() - o.OpenedAt.UnixMilli()
		sum += float64(ms) / float64(msPerDay)
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*10) / 10
}

// CountByStatus группирует не выставленные в счёт заявки по сырому коду статуса.
// Неизвестные статусы остаются отдельными группами.
func CountByStatus(orders []entities.ServiceOrder) []types.DashboardCountByGroup {
	counts := make(map[string]int64)
	for _, o := range orders {
		if o.IsInvoiced() {
			continue
		}
		counts[string(o.Status)]++
	}

	out := make([]types.DashboardCountByGroup, 0, len(counts))
	for status, count := range counts {
		out = append(out, types.DashboardCountByGroup{GroupName: status, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].GroupName < out[j].GroupName
	})
	return out
}

// TopTechnicians — техники с наибольшим числом не выставленных в счёт заявок.
// limit <= 0 — без ограничения.
func TopTechnicians(orders []entities.ServiceOrder, technicians []entities.Technician, limit int) []types.DashboardTechnicianRank {
	names := make(map[uuid.UUID]string, len(technicians))
	for _, t := range technicians {
		names[t.ID] = t.Name
	}

	counts := make(map[uuid.UUID]*types.DashboardTechnicianRank)
	for _, o := range orders {
		if o.IsInvoiced() || o.TechnicianID == nil {
			continue
		}
		id := *o.TechnicianID
		rank, ok := counts[id]
		if !ok {
			name, known := names[id]
			if !known && o.TechnicianName != nil {
				name = *o.TechnicianName
			}
			if name == "" {
				name = id.String()
			}
			rank = &types.DashboardTechnicianRank{TechnicianID: id, Name: name}
			counts[id] = rank
		}
		rank.Count++
	}

	out := make([]types.DashboardTechnicianRank, 0, len(counts))
	for _, r := range counts {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].TechnicianID.String() < out[j].TechnicianID.String()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ComputeAlerts — срочные и критические открытые заявки, средний возраст портфеля.
func ComputeAlerts(orders []entities.ServiceOrder, now time.Time) types.DashboardAlerts {
	var alerts types.DashboardAlerts
	for _, o := range orders {
		if !constants.IsOpenStatus(o.Status) {
			continue
		}
		days := AgeInDays(o.OpenedAt, now)
		if IsUrgent(days) {
			alerts.UrgentCount++
		}
		if IsCritical(days) {
			alerts.CriticalCount++
		}
	}

	avg, _ := AverageOpenAge(orders, now)
	alerts.AverageAgeDays = math.Round(avg*10) / 10
	alerts.ElevatedAverage = IsElevatedAverage(avg)
	return alerts
}

// Snapshot — все производные дашборда из одной выборки.
func Snapshot(orders []entities.ServiceOrder, technicians []entities.Technician, now time.Time, topN int) types.DashboardSnapshot {
	return types.DashboardSnapshot{
		KPIs:           ComputeKPIs(orders, now),
		Alerts:         ComputeAlerts(orders, now),
		CountByStatus:  CountByStatus(orders),
		TopTechnicians: TopTechnicians(orders, technicians, topN),
		ComputedAt:     now,
	}
}
