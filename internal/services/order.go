package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/dto"
	"service-order-system/internal/entities"
	"service-order-system/internal/events"
	"service-order-system/internal/repositories"
	"service-order-system/pkg/config"
	"service-order-system/pkg/constants"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/eventbus"
	"service-order-system/pkg/types"
	"service-order-system/pkg/utils"
)

// EventPublisher — часть eventbus.Bus, нужная сервисам.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter types.OrderFilter, limit, offset uint64) ([]dto.OrderDTO, uint64, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, patch dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, patch dto.ChangeStatusDTO) (*dto.OrderDTO, error)
}

type OrderService struct {
	orderRepo      repositories.OrderRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	txManager      repositories.TxManagerInterface
	gatekeeper     *authz.Gatekeeper
	publisher      EventPublisher
	cfg            config.OrdersConfig
	logger         *zap.Logger
	now            func() time.Time
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	txManager repositories.TxManagerInterface,
	gatekeeper *authz.Gatekeeper,
	publisher EventPublisher,
	cfg config.OrdersConfig,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		technicianRepo: technicianRepo,
		txManager:      txManager,
		gatekeeper:     gatekeeper,
		publisher:      publisher,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// present собирает DTO и прячет суммы от ролей без доступа к финансам.
func (s *OrderService) present(role authz.Role, order entities.ServiceOrder) dto.OrderDTO {
	out := dto.NewOrderDTO(order, s.now())
	if !s.gatekeeper.Can(role, authz.CapViewFinancials) {
		return out.WithoutFinancials()
	}
	return out
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.OrderFilter, limit, offset uint64) ([]dto.OrderDTO, uint64, error) {
	role, err := utils.GetRoleFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	orders, total, err := s.orderRepo.GetOrders(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("Ошибка получения списка заявок", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		result = append(result, s.present(role, o))
	}
	return result, total, nil
}

func (s *OrderService) FindOrder(ctx context.Context, id uuid.UUID) (*dto.OrderDTO, error) {
	role, err := utils.GetRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	out := s.present(role, *order)
	return &out, nil
}

// checkPatchRights — какие поля роль вправе менять.
func (s *OrderService) checkPatchRights(role authz.Role, patch dto.UpdateOrderDTO) error {
	if !s.gatekeeper.Can(role, authz.CapEditOrder) {
		return apperrors.ErrForbidden
	}
	if patch.ChangesStatus() && !s.gatekeeper.Can(role, authz.CapChangeStatus) {
		return apperrors.ErrForbidden
	}
	if patch.ChangesTechnician() && !s.gatekeeper.Can(role, authz.CapAssignTechnician) {
		return apperrors.ErrForbidden
	}
	if patch.ChangesFinancials() && !s.gatekeeper.Can(role, authz.CapViewFinancials) {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, patch dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	role, err := utils.GetRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.checkPatchRights(role, patch); err != nil {
		return nil, err
	}

	updated, err := s.mutate(ctx, id, func(order *entities.ServiceOrder) error {
		return applyOrderPatch(order, patch, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Заявка обновлена", zap.String("orderID", id.String()), zap.String("role", string(role)))
	out := s.present(role, *updated)
	return &out, nil
}

// ChangeStatus — смена статуса. Роль без права редактирования
// меняет статус только у заявок, назначенных на неё.
func (s *OrderService) ChangeStatus(ctx context.Context, id uuid.UUID, patch dto.ChangeStatusDTO) (*dto.OrderDTO, error) {
	role, err := utils.GetRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !s.gatekeeper.Can(role, authz.CapChangeStatus) {
		return nil, apperrors.ErrForbidden
	}

	status, err := constants.ParseOrderStatus(patch.Status)
	if err != nil {
		return nil, apperrors.NewValidationError("status", "%v", err)
	}

	var technicianID *uuid.UUID
	if !s.gatekeeper.Can(role, authz.CapEditOrder) {
		userID, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return nil, err
		}
		technician, err := s.technicianRepo.FindByUserID(ctx, userID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.ErrForbidden
			}
			return nil, err
		}
		technicianID = &technician.ID
	}

	updated, err := s.mutate(ctx, id, func(order *entities.ServiceOrder) error {
		if technicianID != nil && !order.AssignedTo(*technicianID) {
			return apperrors.ErrForbidden
		}
		order.ApplyStatus(status, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Статус заявки изменён",
		zap.String("orderID", id.String()), zap.String("status", string(status)), zap.String("role", string(role)))
	out := s.present(role, *updated)
	return &out, nil
}

// mutate читает заявку, применяет изменение и сохраняет в одной транзакции.
// После коммита публикует OrderChangedEvent.
func (s *OrderService) mutate(ctx context.Context, id uuid.UUID, change func(order *entities.ServiceOrder) error) (*entities.ServiceOrder, error) {
	var updated *entities.ServiceOrder
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if s.cfg.LockFinal && constants.IsFinalStatus(order.Status) {
			return apperrors.NewConflictError("заявка в финальном статусе "+string(order.Status)+" не редактируется", nil)
		}
		if err := change(order); err != nil {
			return err
		}
		if err := s.orderRepo.Update(ctx, tx, *order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.OrderChangedEvent{
		OrderID:   id,
		Operation: "UPDATE",
		Source:    events.SourceAPI,
	})
	return updated, nil
}

// applyOrderPatch переносит заданные поля патча в заявку.
func applyOrderPatch(order *entities.ServiceOrder, patch dto.UpdateOrderDTO, now time.Time) error {
	if patch.Type.Valid {
		t := constants.OrderType(strings.ToUpper(patch.Type.String))
		if !t.IsValid() {
			return apperrors.NewValidationError("type", "неизвестный тип заявки: %q", patch.Type.String)
		}
		order.Type = t
	}

	if patch.ClientName.Valid {
		name := strings.TrimSpace(patch.ClientName.String)
		if name == "" {
			return apperrors.NewValidationError("client_name", "обязательное поле")
		}
		order.ClientName = name
	}
	if patch.MachineModel.Valid {
		order.MachineModel = strings.TrimSpace(patch.MachineModel.String)
	}
	if patch.Chassis.Valid {
		order.Chassis = strings.TrimSpace(patch.Chassis.String)
	}

	if patch.UnassignTechnician {
		order.TechnicianID = nil
		order.TechnicianName = nil
	} else if patch.TechnicianID.Valid {
		id, err := uuid.Parse(patch.TechnicianID.String)
		if err != nil {
			return apperrors.NewValidationError("technician_id", "некорректный UUID")
		}
		if order.TechnicianID == nil || *order.TechnicianID != id {
			order.TechnicianName = nil
		}
		order.TechnicianID = &id
	}

	money := []struct {
		field string
		value *decimal.Decimal
		raw   string
		valid bool
	}{
		{"labor_value", &order.LaborValue, patch.LaborValue.String, patch.LaborValue.Valid},
		{"parts_value", &order.PartsValue, patch.PartsValue.String, patch.PartsValue.Valid},
		{"travel_value", &order.TravelValue, patch.TravelValue.String, patch.TravelValue.Valid},
	}
	for _, m := range money {
		if !m.valid {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(m.raw))
		if err != nil || d.IsNegative() {
			return apperrors.NewValidationError(m.field, "значение должно быть неотрицательным числом")
		}
		*m.value = d
	}

	if patch.ClosedAt.Valid {
		closed := patch.ClosedAt.Time
		order.ClosedAt = &closed
	}
	if patch.InvoicedAt.Valid {
		invoiced := patch.InvoicedAt.Time
		order.InvoicedAt = &invoiced
	}

	// Статус последним: явный invoiced_at из патча имеет приоритет над автоматической отметкой.
	if patch.Status.Valid {
		status, err := constants.ParseOrderStatus(patch.Status.String)
		if err != nil {
			return apperrors.NewValidationError("status", "%v", err)
		}
		order.ApplyStatus(status, now)
	}
	return nil
}
