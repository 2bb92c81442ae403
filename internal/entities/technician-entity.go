package entities

import (
	"github.com/google/uuid"

	"service-order-system/pkg/types"
)

// Technician не владеет заявками: связь только через ServiceOrder.TechnicianID.
type Technician struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Specialty *string    `json:"specialty,omitempty" db:"specialty"`
	UserID    *uuid.UUID `json:"user_id,omitempty" db:"user_id"`

	types.BaseEntity
}
