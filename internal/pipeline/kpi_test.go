package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-order-system/internal/entities"
	"service-order-system/pkg/constants"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func valuedOrder(typ constants.OrderType, labor, parts, travel string) entities.ServiceOrder {
	return entities.ServiceOrder{
		ID:          uuid.New(),
		Type:        typ,
		Status:      constants.StatusActive,
		OpenedAt:    daysAgo(1),
		LaborValue:  money(labor),
		PartsValue:  money(parts),
		TravelValue: money(travel),
	}
}

func TestComputeKPIs_TotalsByType(t *testing.T) {
	invoicedAt := daysAgo(1)
	invoiced := valuedOrder(constants.OrderTypeNormal, "9999", "0", "0")
	invoiced.InvoicedAt = &invoicedAt

	orders := []entities.ServiceOrder{
		valuedOrder(constants.OrderTypeNormal, "100.10", "200", "50"),
		valuedOrder(constants.OrderTypeNormal, "0", "49.90", "0"),
		valuedOrder(constants.OrderTypeWarranty, "300", "0", "25.5"),
		invoiced,
	}

	kpis := ComputeKPIs(orders, now)

	assert.Equal(t, int64(3), kpis.OpenOrders)
	assert.Equal(t, int64(2), kpis.Normal.Count)
	assert.True(t, money("400").Equal(kpis.Normal.Total), kpis.Normal.Total.String())
	assert.Equal(t, int64(1), kpis.Warranty.Count)
	assert.True(t, money("325.5").Equal(kpis.Warranty.Total), kpis.Warranty.Total.String())
	assert.True(t, money("725.5").Equal(kpis.CombinedTotal), kpis.CombinedTotal.String())
}

func TestComputeKPIs_EmptyIsZeroed(t *testing.T) {
	kpis := ComputeKPIs(nil, now)
	assert.Zero(t, kpis.OpenOrders)
	assert.True(t, kpis.CombinedTotal.IsZero())
	assert.True(t, kpis.Normal.Total.IsZero())
	assert.Equal(t, 0.0, kpis.AvgResolutionDays)
	assert.False(t, math.IsNaN(kpis.AvgResolutionDays))
}

func TestAverageResolutionDays(t *testing.T) {
	closedAfter := func(openedDaysAgo int, resolution time.Duration) entities.ServiceOrder {
		o := order(constants.StatusCompleted, openedDaysAgo)
		closed := o.OpenedAt.Add(resolution)
		o.ClosedAt = &closed
		return o
	}

	orders := []entities.ServiceOrder{
		closedAfter(20, 2*24*time.Hour),
		closedAfter(30, 3*24*time.Hour+12*time.Hour),
		closedAfter(40, 24*time.Hour+6*time.Hour),
		// старше пяти лет — не учитывается
		closedAfter(6*365, 100*24*time.Hour),
		// не закрыта — не учитывается
		order(constants.StatusActive, 10),
	}

	// (2 + 3.5 + 1.25) / 3 = 2.25 -> 2.3
	assert.Equal(t, 2.3, AverageResolutionDays(orders, now))
	assert.Equal(t, 0.0, AverageResolutionDays([]entities.ServiceOrder{order(constants.StatusActive, 1)}, now))
}

func TestCountByStatus_KeepsUnknownStatuses(t *testing.T) {
	invoicedAt := now
	invoiced := order(constants.StatusInvoiced, 1)
	invoiced.InvoicedAt = &invoicedAt

	orders := []entities.ServiceOrder{
		order(constants.StatusActive, 1),
		order(constants.StatusActive, 2),
		order(constants.OrderStatus("EM_GARANTIA_LEGADO"), 3),
		order(constants.StatusPaused, 4),
		invoiced,
	}

	counts := CountByStatus(orders)

	require.Len(t, counts, 3)
	assert.Equal(t, "ACTIVE", counts[0].GroupName)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, "EM_GARANTIA_LEGADO", counts[1].GroupName)
	assert.Equal(t, "PAUSED", counts[2].GroupName)
	assert.Empty(t, CountByStatus(nil))
}

func TestTopTechnicians(t *testing.T) {
	ana := entities.Technician{ID: uuid.New(), Name: "Ana"}
	bruno := entities.Technician{ID: uuid.New(), Name: "Bruno"}
	ghostID := uuid.New()
	ghostName := "Técnico desligado"

	invoicedAt := now
	invoiced := assignedOrder(ana.ID, constants.StatusInvoiced, 1)
	invoiced.InvoicedAt = &invoicedAt
	ghost := assignedOrder(ghostID, constants.StatusActive, 1)
	ghost.TechnicianName = &ghostName

	orders := []entities.ServiceOrder{
		assignedOrder(ana.ID, constants.StatusActive, 1),
		assignedOrder(bruno.ID, constants.StatusActive, 1),
		assignedOrder(bruno.ID, constants.StatusPaused, 1),
		invoiced,
		invoiced,
		ghost,
		order(constants.StatusActive, 1),
	}

	top := TopTechnicians(orders, []entities.Technician{ana, bruno}, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Bruno", top[0].Name)
	assert.Equal(t, int64(2), top[0].Count)
	assert.Equal(t, "Ana", top[1].Name)
	assert.Equal(t, int64(1), top[1].Count)

	all := TopTechnicians(orders, []entities.Technician{ana, bruno}, 0)
	require.Len(t, all, 3)
	assert.Equal(t, ghostName, all[2].Name)
}

func TestComputeAlerts(t *testing.T) {
	orders := []entities.ServiceOrder{
		order(constants.StatusActive, 5),
		order(constants.StatusWaitingParts, 10),
		order(constants.StatusPaused, 120),
		order(constants.StatusCompleted, 500),
		order(constants.StatusCancelled, 500),
	}

	alerts := ComputeAlerts(orders, now)

	assert.Equal(t, int64(2), alerts.UrgentCount)
	assert.Equal(t, int64(1), alerts.CriticalCount)
	assert.Equal(t, 45.0, alerts.AverageAgeDays)
	assert.True(t, alerts.ElevatedAverage)

	empty := ComputeAlerts(nil, now)
	assert.Zero(t, empty.CriticalCount)
	assert.False(t, empty.ElevatedAverage)
}

func TestSnapshot(t *testing.T) {
	snap := Snapshot(nil, nil, now, 5)
	assert.Equal(t, now, snap.ComputedAt)
	assert.Empty(t, snap.CountByStatus)
	assert.Empty(t, snap.TopTechnicians)
	assert.Zero(t, snap.KPIs.OpenOrders)
}
