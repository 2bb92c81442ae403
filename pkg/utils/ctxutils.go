// pkg/utils/ctxutils.go

package utils

import (
	"context"

	"github.com/google/uuid"

	"service-order-system/internal/authz"
	"service-order-system/pkg/contextkeys"
	apperrors "service-order-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetRoleFromCtx(ctx context.Context) (authz.Role, error) {
	role, ok := ctx.Value(contextkeys.RoleKey).(authz.Role)
	if !ok || role == "" {
		return "", apperrors.ErrRoleNotFoundInContext
	}
	return role, nil
}

// WithIdentity кладёт пользователя и роль в контекст.
func WithIdentity(ctx context.Context, userID uuid.UUID, role authz.Role) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.RoleKey, role)
}
