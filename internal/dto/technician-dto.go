package dto

import (
	"github.com/google/uuid"

	"service-order-system/internal/entities"
)

// CreateTechnicianDTO — заведение техника: учётная запись + профиль.
type CreateTechnicianDTO struct {
	Name      string  `json:"name" validate:"required,min=2,max=255"`
	Specialty *string `json:"specialty" validate:"omitempty,max=255"`
	Email     string  `json:"email" validate:"required,custom_email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
}

type TechnicianDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Specialty *string    `json:"specialty,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
}

func NewTechnicianDTO(t entities.Technician) TechnicianDTO {
	return TechnicianDTO{ID: t.ID, Name: t.Name, Specialty: t.Specialty, UserID: t.UserID}
}
