package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/dto"
	"service-order-system/internal/entities"
	"service-order-system/internal/events"
	"service-order-system/pkg/config"
	"service-order-system/pkg/constants"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/utils"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type orderServiceFixture struct {
	svc       *OrderService
	orders    *orderRepoMock
	techs     *technicianRepoMock
	publisher *recordingPublisher
}

func newOrderServiceFixture(cfg config.OrdersConfig) *orderServiceFixture {
	f := &orderServiceFixture{
		orders:    &orderRepoMock{},
		techs:     &technicianRepoMock{},
		publisher: &recordingPublisher{},
	}
	gk := authz.NewGatekeeper(authz.NewEngine(), zap.NewNop())
	f.svc = NewOrderService(f.orders, f.techs, noTx{}, gk, f.publisher, cfg, zap.NewNop())
	f.svc.now = func() time.Time { return testNow }
	return f
}

func ctxAs(role authz.Role) context.Context {
	return utils.WithIdentity(context.Background(), uuid.New(), role)
}

func sampleOrder() *entities.ServiceOrder {
	return &entities.ServiceOrder{
		ID:          uuid.New(),
		OrderNumber: "OS-1001",
		Type:        constants.OrderTypeNormal,
		Status:      constants.StatusActive,
		OpenedAt:    testNow.AddDate(0, 0, -10),
		ClientName:  "Fazenda Boa Vista",
		LaborValue:  decimal.RequireFromString("100"),
		PartsValue:  decimal.RequireFromString("50.25"),
	}
}

func TestOrderService_FindOrder_FinancialsByRole(t *testing.T) {
	f := newOrderServiceFixture(config.OrdersConfig{})
	order := sampleOrder()
	f.orders.On("FindByID", mock.Anything, mock.Anything, order.ID).Return(order, nil)

	manager, err := f.svc.FindOrder(ctxAs(authz.RoleManager), order.ID)
	require.NoError(t, err)
	assert.True(t, manager.NetTotal.Equal(decimal.RequireFromString("150.25")))
	assert.Equal(t, int64(10), manager.Aging.Days)
	assert.True(t, manager.Aging.Urgent)

	tech, err := f.svc.FindOrder(ctxAs(authz.RoleTechnician), order.ID)
	require.NoError(t, err)
	assert.True(t, tech.NetTotal.IsZero())
	assert.True(t, tech.LaborValue.IsZero())
}

func TestOrderService_FindOrder_NoRole(t *testing.T) {
	f := newOrderServiceFixture(config.OrdersConfig{})
	_, err := f.svc.FindOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrRoleNotFoundInContext)
}

func TestOrderService_UpdateOrder_InvoiceStampsDate(t *testing.T) {
	f := newOrderServiceFixture(config.OrdersConfig{})
	order := sampleOrder()
	techID := uuid.New()

	f.orders.On("FindByID", mock.Anything, mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Update", mock.Anything, mock.Anything, mock.MatchedBy(func(o entities.ServiceOrder) bool {
		return o.Status == constants.StatusInvoiced &&
			o.InvoicedAt != nil && o.InvoicedAt.Equal(testNow) &&
			o.TechnicianID != nil && *o.TechnicianID == techID
	})).Return(nil).Once()

	out, err := f.svc.UpdateOrder(ctxAs(authz.RoleShopSupervisor), order.ID, dto.UpdateOrderDTO{
		Status:       null.StringFrom("INVOICED"),
		TechnicianID: null.StringFrom(techID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInvoiced, out.Status)
	f.orders.AssertExpectations(t)

	published := f.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, order.ID, published[0].(events.OrderChangedEvent).OrderID)
}

func TestOrderService_UpdateOrder_KeepsExplicitInvoiceDate(t *testing.T) {
	f := newOrderServiceFixture(config.OrdersConfig{})
	order := sampleOrder()
	explicit := testNow.AddDate(0, 0, -2)

	f.orders.On("FindByID", mock.Anything, mock.Anything, order.ID).Return(order, nil)
	f.orders.On("Update", mock.Anything, mock.Anything, mock.MatchedBy(func(o entities.ServiceOrder) bool {
		return o.InvoicedAt != nil && o.InvoicedAt.Equal(explicit)
	})).Return(nil)

	_, err := f.svc.UpdateOrder(ctxAs(authz.RoleManager), order.ID, dto.UpdateOrderDTO{
		Status:     null.StringFrom("INVOICED"),
		InvoicedAt: null.TimeFrom(explicit),
	})
	require.NoError(t, err)
	f.orders.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_Forbidden(t *testing.T) {
	cases := []struct {
		name  string
		role  authz.Role
		patch dto.UpdateOrderDTO
	}{
		{"technician cannot edit", authz.RoleTechnician, dto.UpdateOrderDTO{Chassis: null.StringFrom("X")}},
		{"sales cannot assign", authz.RoleSalesConsultant, dto.UpdateOrderDTO{UnassignTechnician: true}},
		{"supervisor cannot touch money", authz.RoleShopSupervisor, dto.UpdateOrderDTO{LaborValue: null.StringFrom("10")}},
		{"unknown role", authz.Role("INTERN"), dto.UpdateOrderDTO{Chassis: null.StringFrom("X")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderServiceFixture(config.OrdersConfig{})
			_, err := f.svc.UpdateOrder(ctxAs(tc.role), uuid.New(), tc.patch)
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
			f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, f.publisher.Events())
		})
	}
}

func TestOrderService_UpdateOrder_Validation(t *testing.T) {
	cases := map[string]dto.UpdateOrderDTO{
		"blank client":   {ClientName: null.StringFrom("   ")},
		"negative money": {PartsValue: null.StringFrom("-1")},
		"bad technician": {TechnicianID: null.StringFrom("nope")},
	}
	for name, patch := range cases {
		t.Run(name, func(t *testing.T) {
			f := newOrderServiceFixture(config.OrdersConfig{})
			order := sampleOrder()
			f.orders.On("FindByID", mock.Anything, mock.Anything, order.ID).Return(order, nil)

			_, err := f.svc.UpdateOrder(ctxAs(authz.RoleManager), order.ID, patch)
			var vErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &vErr)
			f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_UpdateOrder_LockFinal(t *testing.T) {
	order := sampleOrder()
	order.Status = constants.StatusCancelled

	locked := newOrderServiceFixture(config.OrdersConfig{LockFinal: true})
	locked.orders.On("FindByID", mock.Anything, mock.Anything, order.ID).Return(order, nil)
	_, err := locked.svc.UpdateOrder(ctxAs(authz.RoleManager), order.ID, dto.UpdateOrderDTO{Chassis: null.StringFrom("X")})
	var conflict *apperrors.ConflictError
	assert.ErrorAs(t, err, &conflict)

	open := newOrderServiceFixture(config.OrdersConfig{})
	open.orders.On("FindByID", mock.Anything, mock.Anything, order.ID).Return(order, nil)
	open.orders.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	_, err = open.svc.UpdateOrder(ctxAs(authz.RoleManager), order.ID, dto.UpdateOrderDTO{Chassis: null.StringFrom("X")})
	assert.NoError(t, err)
}

func TestOrderService_UpdateOrder_NotFound(t *testing.T) {
	f := newOrderServiceFixture(config.OrdersConfig{})
	id := uuid.New()
	f.orders.On("FindByID", mock.Anything, mock.Anything, id).Return(nil, apperrors.NewNotFoundError("заявка", id.String()))

	_, err := f.svc.UpdateOrder(ctxAs(authz.RoleManager), id, dto.UpdateOrderDTO{Chassis: null.StringFrom("X")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, f.publisher.Events())
}

func TestOrderService_ChangeStatus_TechnicianOwnOrderOnly(t *testing.T) {
	f := newOrderServiceFixture(config.OrdersConfig{})
	userID := uuid.New()
	technician := &entities.Technician{ID: uuid.New(), Name: "Carlos", UserID: &userID}
	ctx := utils.WithIdentity(context.Background(), userID, authz.RoleTechnician)

	own := sampleOrder()
	own.TechnicianID = &technician.ID
	foreign := sampleOrder()

	f.techs.On("FindByUserID", mock.Anything, userID).Return(technician, nil)
	f.orders.On("FindByID", mock.Anything, mock.Anything, own.ID).Return(own, nil)
	f.orders.On("FindByID", mock.Anything, mock.Anything, foreign.ID).Return(foreign, nil)
	f.orders.On("Update", mock.Anything, mock.Anything, mock.MatchedBy(func(o entities.ServiceOrder) bool {
		return o.ID == own.ID && o.Status == constants.StatusWaitingParts
	})).Return(nil).Once()

	out, err := f.svc.ChangeStatus(ctx, own.ID, dto.ChangeStatusDTO{Status: "WAITING_PARTS"})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusWaitingParts, out.Status)

	_, err = f.svc.ChangeStatus(ctx, foreign.ID, dto.ChangeStatusDTO{Status: "WAITING_PARTS"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	f.orders.AssertExpectations(t)
}

func TestOrderService_ChangeStatus_NoCapability(t *testing.T) {
	f := newOrderServiceFixture(config.OrdersConfig{})
	_, err := f.svc.ChangeStatus(ctxAs(authz.RoleWarehouse), uuid.New(), dto.ChangeStatusDTO{Status: "PAUSED"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
