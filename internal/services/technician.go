package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"service-order-system/internal/authz"
	"service-order-system/internal/dto"
	"service-order-system/internal/entities"
	"service-order-system/internal/repositories"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/utils"
)

// Откат учётной записи не должен зависеть от отменённого запроса.
const identityRollbackTimeout = 5 * time.Second

type TechnicianServiceInterface interface {
	GetTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
	CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*dto.TechnicianDTO, error)
}

type TechnicianService struct {
	technicianRepo repositories.TechnicianRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	logger         *zap.Logger
	hashPassword   func(string) (string, error)
}

func NewTechnicianService(
	technicianRepo repositories.TechnicianRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *TechnicianService {
	return &TechnicianService{
		technicianRepo: technicianRepo,
		userRepo:       userRepo,
		logger:         logger,
		hashPassword:   utils.HashPassword,
	}
}

func (s *TechnicianService) GetTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	technicians, err := s.technicianRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("Ошибка получения списка техников", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TechnicianDTO, 0, len(technicians))
	for _, t := range technicians {
		result = append(result, dto.NewTechnicianDTO(t))
	}
	return result, nil
}

// CreateTechnician заводит учётную запись с ролью TECHNICIAN, затем профиль.
// Если профиль создать не удалось, учётная запись удаляется.
func (s *TechnicianService) CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*dto.TechnicianDTO, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "обязательное поле")
	}
	if len(payload.Password) < 8 {
		return nil, apperrors.NewValidationError("password", "минимальная длина 8")
	}

	hash, err := s.hashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	userID, err := s.userRepo.CreateUser(ctx, nil, entities.User{
		Fio:      name,
		Email:    strings.ToLower(strings.TrimSpace(payload.Email)),
		Role:     string(authz.RoleTechnician),
		Password: hash,
	})
	if err != nil {
		s.logger.Error("Не удалось создать учётную запись техника", zap.Error(err))
		return nil, err
	}

	created, err := s.technicianRepo.Create(ctx, nil, entities.Technician{
		Name:      name,
		Specialty: payload.Specialty,
		UserID:    &userID,
	})
	if err != nil {
		s.logger.Error("Не удалось создать профиль техника, откат учётной записи",
			zap.String("userID", userID.String()), zap.Error(err))
		s.rollbackIdentity(ctx, userID)
		return nil, apperrors.NewConflictError("профиль техника не создан", err)
	}

	s.logger.Info("Техник заведён", zap.String("technicianID", created.ID.String()), zap.String("userID", userID.String()))
	out := dto.NewTechnicianDTO(*created)
	return &out, nil
}

func (s *TechnicianService) rollbackIdentity(ctx context.Context, userID uuid.UUID) {
	rollbackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), identityRollbackTimeout)
	defer cancel()

	if err := s.userRepo.DeleteUser(rollbackCtx, nil, userID); err != nil {
		s.logger.Error("Откат учётной записи не удался", zap.String("userID", userID.String()), zap.Error(err))
	}
}
