package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"service-order-system/internal/dto"
	"service-order-system/internal/entities"
	"service-order-system/internal/pipeline"
	"service-order-system/internal/repositories"
	"service-order-system/pkg/constants"
	"service-order-system/pkg/types"
)

type PipelineServiceInterface interface {
	GetPipeline(ctx context.Context, filter types.OrderFilter) (*dto.PipelineDTO, error)
}

type PipelineService struct {
	orderRepo      repositories.OrderRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	logger         *zap.Logger
	now            func() time.Time
}

func NewPipelineService(
	orderRepo repositories.OrderRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	logger *zap.Logger,
) *PipelineService {
	return &PipelineService{
		orderRepo:      orderRepo,
		technicianRepo: technicianRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// fetchOrdersAndTechnicians — два независимых запроса параллельно.
func fetchOrdersAndTechnicians(
	ctx context.Context,
	orderRepo repositories.OrderRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	filter types.OrderFilter,
) ([]entities.ServiceOrder, []entities.Technician, error) {
	var (
		wg          sync.WaitGroup
		orders      []entities.ServiceOrder
		technicians []entities.Technician
		errs        []error
		mu          sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { orders, err = orderRepo.GetAllOrders(ctx, filter); return })
	addTask(func() (err error) { technicians, err = technicianRepo.GetAll(ctx); return })
	wg.Wait()

	if len(errs) > 0 {
		return nil, nil, errs[0]
	}
	return orders, technicians, nil
}

// GetPipeline — канбан по этапам и загрузка техников.
func (s *PipelineService) GetPipeline(ctx context.Context, filter types.OrderFilter) (*dto.PipelineDTO, error) {
	orders, technicians, err := fetchOrdersAndTechnicians(ctx, s.orderRepo, s.technicianRepo, filter)
	if err != nil {
		s.logger.Error("Ошибка загрузки данных канбана", zap.Error(err))
		return nil, err
	}

	stages := pipeline.GroupByStatus(constants.PipelineStages(), orders)
	workload := pipeline.GroupByTechnician(technicians, orders)

	out := dto.NewPipelineDTO(stages, workload, s.now())
	return &out, nil
}
