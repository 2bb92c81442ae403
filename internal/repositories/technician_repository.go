package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"service-order-system/internal/entities"
	apperrors "service-order-system/pkg/errors"
)

const (
	technicianTable  = "technicians"
	technicianFields = "id, name, specialty, user_id, created_at, updated_at"
)

type TechnicianRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Technician, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Technician, error)
	Create(ctx context.Context, tx pgx.Tx, t entities.Technician) (*entities.Technician, error)
}

type TechnicianRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTechnicianRepository(storage *pgxpool.Pool, logger *zap.Logger) TechnicianRepositoryInterface {
	return &TechnicianRepository{storage: storage, logger: logger}
}

func (r *TechnicianRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanTechnician(row pgx.Row) (*entities.Technician, error) {
	var t entities.Technician
	if err := row.Scan(&t.ID, &t.Name, &t.Specialty, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetAll — все техники по алфавиту.
func (r *TechnicianRepository) GetAll(ctx context.Context) ([]entities.Technician, error) {
	query, args, err := psql.Select(technicianFields).From(technicianTable).OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для техников: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError("technicians.list", err)
	}
	defer rows.Close()

	technicians := make([]entities.Technician, 0)
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, storageError("technicians.scan", err)
		}
		technicians = append(technicians, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("technicians.list", err)
	}
	return technicians, nil
}

// FindByUserID — профиль техника по учётной записи.
func (r *TechnicianRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Technician, error) {
	query, args, err := psql.Select(technicianFields).From(technicianTable).Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для FindByUserID: %w", err)
	}

	t, err := scanTechnician(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("техник", userID.String())
		}
		return nil, storageError("technicians.find", err)
	}
	return t, nil
}

func (r *TechnicianRepository) Create(ctx context.Context, tx pgx.Tx, t entities.Technician) (*entities.Technician, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	query, args, err := psql.Insert(technicianTable).
		Columns("id", "name", "specialty", "user_id").
		Values(t.ID, t.Name, t.Specialty, t.UserID).
		Suffix("RETURNING " + technicianFields).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	created, err := scanTechnician(r.getQuerier(tx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, storageError("technicians.create", err)
	}
	return created, nil
}
