// Файл: internal/dto/claims_dto.go
package dto

import (
	"github.com/google/uuid"

	"service-order-system/internal/authz"
)

// UserClaims — данные пользователя, доступные в контексте запроса.
type UserClaims struct {
	UserID uuid.UUID
	Role   authz.Role
}
