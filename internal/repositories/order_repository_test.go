package repositories

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-order-system/internal/entities"
	"service-order-system/pkg/constants"
	"service-order-system/pkg/types"
)

func TestBuildOrderListQuery_NoFilter(t *testing.T) {
	query, args, err := buildOrderListQuery(types.OrderFilter{}, 20, 40).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM service_orders o LEFT JOIN technicians t ON t.id = o.technician_id")
	assert.Contains(t, query, "ORDER BY o.opened_at DESC, o.id")
	assert.Contains(t, query, "LIMIT 20 OFFSET 40")
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestBuildOrderListQuery_AllFilters(t *testing.T) {
	orderType := constants.OrderTypeWarranty
	status := constants.StatusPaused
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	techID := uuid.New()

	filter := types.OrderFilter{
		Type:         &orderType,
		Status:       &status,
		Search:       " JD-5075 ",
		DateFrom:     &from,
		TechnicianID: &techID,
	}

	query, args, err := buildOrderListQuery(filter, 0, 0).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "o.type = $1")
	assert.Contains(t, query, "o.status = $2")
	assert.Contains(t, query, "o.opened_at >= $3")
	assert.Contains(t, query, "o.technician_id = $4")
	assert.Contains(t, query, "(o.order_number ILIKE $5 OR o.client_name ILIKE $6 OR o.chassis ILIKE $7)")
	assert.NotContains(t, query, "LIMIT")

	require.Len(t, args, 7)
	assert.Equal(t, "WARRANTY", args[0])
	assert.Equal(t, "PAUSED", args[1])
	assert.Equal(t, "%JD-5075%", args[4])
}

func TestBuildOrderCountQuery_SharesFilter(t *testing.T) {
	status := constants.StatusActive
	query, args, err := buildOrderCountQuery(types.OrderFilter{Status: &status}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(o.id) FROM service_orders o WHERE o.status = $1", query)
	assert.Equal(t, []interface{}{"ACTIVE"}, args)
}

func TestBuildOrderFindQuery_LocksInsideTransaction(t *testing.T) {
	id := uuid.New()

	query, args, err := buildOrderFindQuery(id, false).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE o.id = $1")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{id}, args)

	query, _, err = buildOrderFindQuery(id, true).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE OF o"))
}

func TestBuildOrderUpdateQuery(t *testing.T) {
	id := uuid.New()
	order := entities.ServiceOrder{
		ID:         id,
		Type:       constants.OrderTypeNormal,
		Status:     constants.StatusInvoiced,
		ClientName: "Fazenda Boa Vista",
		LaborValue: decimal.RequireFromString("150.50"),
	}

	query, args, err := buildOrderUpdateQuery(order).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE service_orders SET type = $1, status = $2")
	assert.Contains(t, query, "updated_at = NOW()")
	assert.Contains(t, query, "WHERE id = $12")
	assert.Equal(t, id, args[len(args)-1])
}

func TestParseOrderChange(t *testing.T) {
	id := uuid.New()
	change, err := parseOrderChange(`{"id":"` + id.String() + `","op":"UPDATE"}`)
	require.NoError(t, err)
	assert.Equal(t, id, change.OrderID)
	assert.Equal(t, "UPDATE", change.Operation)

	_, err = parseOrderChange("not json")
	assert.Error(t, err)
}
