package pipeline

import (
	"sort"

	"service-order-system/internal/entities"
	"service-order-system/pkg/constants"
)

// StageBucket — колонка канбана.
type StageBucket struct {
	Stage  constants.StatusInfo
	Orders []entities.ServiceOrder
}

// GroupByStatus возвращает по одной колонке на каждую стадию, в порядке стадий,
// включая пустые. Отменённые заявки убираются до группировки, заявки
// со статусом вне списка стадий молча отбрасываются.
func GroupByStatus(stages []constants.StatusInfo, orders []entities.ServiceOrder) []StageBucket {
	buckets := make([]StageBucket, len(stages))
	index := make(map[constants.OrderStatus]int, len(stages))
	for i, stage := range stages {
		buckets[i] = StageBucket{Stage: stage, Orders: []entities.ServiceOrder{}}
		if _, dup := index[stage.Status]; !dup {
			index[stage.Status] = i
		}
	}

	for _, o := range orders {
		if o.Status == constants.StatusCancelled {
			continue
		}
		i, ok := index[o.Status]
		if !ok {
			continue
		}
		buckets[i].Orders = append(buckets[i].Orders, o)
	}
	return buckets
}

// TechnicianWorkload — заявки в работе у одного техника.
type TechnicianWorkload struct {
	Technician entities.Technician
	Orders     []entities.ServiceOrder
}

func (w TechnicianWorkload) Count() int {
	return len(w.Orders)
}

// Preview — первые limit заявок и сколько осталось за кадром.
func (w TechnicianWorkload) Preview(limit int) ([]entities.ServiceOrder, int) {
	if limit < 0 {
		limit = 0
	}
	if len(w.Orders) <= limit {
		return w.Orders, 0
	}
	return w.Orders[:limit], len(w.Orders) - limit
}

// GroupByTechnician собирает для каждого техника его заявки, кроме INVOICED и CANCELLED.
// Внутри техника — по возрастанию даты открытия. Техники — по убыванию числа заявок;
// при равенстве сохраняется исходный порядок (алфавитный из выборки).
func GroupByTechnician(technicians []entities.Technician, orders []entities.ServiceOrder) []TechnicianWorkload {
	result := make([]TechnicianWorkload, len(technicians))
	index := make(map[string]int, len(technicians))
	for i, tech := range technicians {
		result[i] = TechnicianWorkload{Technician: tech, Orders: []entities.ServiceOrder{}}
		key := tech.ID.String()
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	for _, o := range orders {
		if o.TechnicianID == nil {
			continue
		}
		if o.Status == constants.StatusInvoiced || o.Status == constants.StatusCancelled {
			continue
		}
		i, ok := index[o.TechnicianID.String()]
		if !ok {
			continue
		}
		result[i].Orders = append(result[i].Orders, o)
	}

	for i := range result {
		bucket := result[i].Orders
		sort.SliceStable(bucket, func(a, b int) bool {
			return bucket[a].OpenedAt.Before(bucket[b].OpenedAt)
		})
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Count() > result[b].Count()
	})
	return result
}
