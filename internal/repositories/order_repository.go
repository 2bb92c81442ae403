package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"service-order-system/internal/entities"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/types"
)

const (
	orderTable  = "service_orders"
	orderFields = `o.id, o.order_number, o.type, o.status, o.opened_at, o.closed_at, o.invoiced_at,
		o.technician_id, t.name AS technician_name, o.consultant_id,
		o.client_name, o.machine_model, o.chassis,
		o.labor_value, o.parts_value, o.travel_value,
		o.created_at, o.updated_at`
	orderFrom = "service_orders o"
	orderJoin = "technicians t ON t.id = o.technician_id"
)

// Поля свободного поиска.
var orderSearchColumns = []string{"o.order_number", "o.client_name", "o.chassis"}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.OrderFilter, limit, offset uint64) ([]entities.ServiceOrder, uint64, error)
	GetAllOrders(ctx context.Context, filter types.OrderFilter) ([]entities.ServiceOrder, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.ServiceOrder, error)
	Update(ctx context.Context, tx pgx.Tx, order entities.ServiceOrder) error
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func (r *OrderRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

// applyOrderFilter добавляет условия фильтра. Пустые поля фильтра не сужают выборку.
func applyOrderFilter(b sq.SelectBuilder, filter types.OrderFilter) sq.SelectBuilder {
	if filter.Type != nil {
		b = b.Where(sq.Eq{"o.type": string(*filter.Type)})
	}
	if filter.Status != nil {
		b = b.Where(sq.Eq{"o.status": string(*filter.Status)})
	}
	if filter.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"o.opened_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		b = b.Where(sq.LtOrEq{"o.opened_at": *filter.DateTo})
	}
	if filter.TechnicianID != nil {
		b = b.Where(sq.Eq{"o.technician_id": *filter.TechnicianID})
	}
	if filter.ConsultantID != nil {
		b = b.Where(sq.Eq{"o.consultant_id": *filter.ConsultantID})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		or := make(sq.Or, 0, len(orderSearchColumns))
		for _, col := range orderSearchColumns {
			or = append(or, sq.ILike{col: pattern})
		}
		b = b.Where(or)
	}
	return b
}

// buildOrderListQuery — выборка заявок, новые сверху.
func buildOrderListQuery(filter types.OrderFilter, limit, offset uint64) sq.SelectBuilder {
	b := psql.Select(orderFields).From(orderFrom).LeftJoin(orderJoin)
	b = applyOrderFilter(b, filter).OrderBy("o.opened_at DESC", "o.id")
	if limit > 0 {
		b = b.Limit(limit).Offset(offset)
	}
	return b
}

func buildOrderCountQuery(filter types.OrderFilter) sq.SelectBuilder {
	return applyOrderFilter(psql.Select("COUNT(o.id)").From(orderFrom), filter)
}

func scanOrder(row pgx.Row) (*entities.ServiceOrder, error) {
	var o entities.ServiceOrder
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Type, &o.Status, &o.OpenedAt, &o.ClosedAt, &o.InvoicedAt,
		&o.TechnicianID, &o.TechnicianName, &o.ConsultantID,
		&o.ClientName, &o.MachineModel, &o.Chassis,
		&o.LaborValue, &o.PartsValue, &o.TravelValue,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, b sq.SelectBuilder) ([]entities.ServiceOrder, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError("service_orders.list", err)
	}
	defer rows.Close()

	orders := make([]entities.ServiceOrder, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, storageError("service_orders.scan", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("service_orders.list", err)
	}
	return orders, nil
}

func (r *OrderRepository) GetOrders(ctx context.Context, filter types.OrderFilter, limit, offset uint64) ([]entities.ServiceOrder, uint64, error) {
	countQuery, countArgs, err := buildOrderCountQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки SQL подсчёта заявок: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, storageError("service_orders.count", err)
	}
	if total == 0 {
		return []entities.ServiceOrder{}, 0, nil
	}

	orders, err := r.queryOrders(ctx, buildOrderListQuery(filter, limit, offset))
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetAllOrders — без пагинации, для канбана и KPI.
func (r *OrderRepository) GetAllOrders(ctx context.Context, filter types.OrderFilter) ([]entities.ServiceOrder, error) {
	return r.queryOrders(ctx, buildOrderListQuery(filter, 0, 0))
}

// buildOrderFindQuery внутри транзакции блокирует строку заявки до коммита.
func buildOrderFindQuery(id uuid.UUID, lock bool) sq.SelectBuilder {
	b := psql.Select(orderFields).From(orderFrom).LeftJoin(orderJoin).Where(sq.Eq{"o.id": id})
	if lock {
		b = b.Suffix("FOR UPDATE OF o")
	}
	return b
}

func (r *OrderRepository) FindByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.ServiceOrder, error) {
	query, args, err := buildOrderFindQuery(id, tx != nil).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для FindByID: %w", err)
	}

	order, err := scanOrder(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("заявка", id.String())
		}
		return nil, storageError("service_orders.find", err)
	}
	return order, nil
}

func buildOrderUpdateQuery(o entities.ServiceOrder) sq.UpdateBuilder {
	return psql.Update(orderTable).
		Set("type", string(o.Type)).
		Set("status", string(o.Status)).
		Set("closed_at", o.ClosedAt).
		Set("invoiced_at", o.InvoicedAt).
		Set("technician_id", o.TechnicianID).
		Set("client_name", o.ClientName).
		Set("machine_model", o.MachineModel).
		Set("chassis", o.Chassis).
		Set("labor_value", o.LaborValue).
		Set("parts_value", o.PartsValue).
		Set("travel_value", o.TravelValue).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": o.ID})
}

func (r *OrderRepository) Update(ctx context.Context, tx pgx.Tx, order entities.ServiceOrder) error {
	query, args, err := buildOrderUpdateQuery(order).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return storageError("service_orders.update", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("заявка", order.ID.String())
	}
	return nil
}
