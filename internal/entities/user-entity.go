// Файл: internal/entities/user_entity.go
package entities

import (
	"github.com/google/uuid"

	"service-order-system/pkg/types"
)

// User — учётная запись (identity). Роль хранится сырой строкой и разбирается на входе.
type User struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Fio      string    `json:"fio" db:"fio"`
	Email    string    `json:"email" db:"email"`
	Role     string    `json:"role" db:"role"`
	Password string    `json:"-" db:"password"`

	types.BaseEntity
}
