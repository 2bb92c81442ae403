package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"service-order-system/internal/entities"
	apperrors "service-order-system/pkg/errors"
)

const userTable = "users"

// UserRepositoryInterface — учётные записи. Вход и сессии обслуживает внешний провайдер,
// здесь только заведение и удаление identity.
type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (uuid.UUID, error)
	DeleteUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func (r *UserRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user entities.User) (uuid.UUID, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query, args, err := psql.Insert(userTable).
		Columns("id", "fio", "email", "role", "password").
		Values(user.ID, user.Fio, user.Email, user.Role, user.Password).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("ошибка сборки запроса CreateUser: %w", err)
	}

	var id uuid.UUID
	if err := r.getQuerier(tx).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, storageError("users.create", err)
	}
	return id, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query, args, err := psql.Delete(userTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса DeleteUser: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return storageError("users.delete", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("пользователь", id.String())
	}
	return nil
}
