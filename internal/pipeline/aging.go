// Package pipeline содержит чистые функции над уже загруженной выборкой заявок:
// возраст и срочность, колонки канбана, загрузку техников и KPI дашборда.
// Ввода-вывода и общего изменяемого состояния здесь нет.
package pipeline

import (
	"time"

	"service-order-system/internal/entities"
	"service-order-system/pkg/constants"
)

const msPerDay int64 = 86_400_000

type UrgencyTier string

const (
	TierNormal   UrgencyTier = "NORMAL"
	TierUrgent   UrgencyTier = "URGENT"
	TierCritical UrgencyTier = "CRITICAL"
)

// AgingResult вычисляется при каждом чтении и нигде не хранится.
type AgingResult struct {
	Days     int64       `json:"days"`
	Urgent   bool        `json:"urgent"`
	Critical bool        `json:"critical"`
	Tier     UrgencyTier `json:"tier"`
}

// AgeInDays = floor((now - openedAt) в мс / 86 400 000).
// Отрицательные значения (дата открытия в будущем) не обрезаются.
func AgeInDays(openedAt, now time.Time) int64 {
	ms := now.UnixMilli() - openedAt.UnixMilli()
	days := ms / msPerDay
	if ms%msPerDay != 0 && ms < 0 {
		days--
	}
	return days
}

func IsUrgent(days int64) bool {
	return days > constants.UrgentAfterDays
}

func IsCritical(days int64) bool {
	return days > constants.CriticalAfterDays
}

func Age(openedAt, now time.Time) AgingResult {
	days := AgeInDays(openedAt, now)
	res := AgingResult{
		Days:     days,
		Urgent:   IsUrgent(days),
		Critical: IsCritical(days),
		Tier:     TierNormal,
	}
	switch {
	case res.Critical:
		res.Tier = TierCritical
	case res.Urgent:
		res.Tier = TierUrgent
	}
	return res
}

// AverageOpenAge — средний возраст открытых заявок и их количество.
func AverageOpenAge(orders []entities.ServiceOrder, now time.Time) (float64, int) {
	var sum int64
	n := 0
	for _, o := range orders {
		if !constants.IsOpenStatus(o.Status) {
			continue
		}
		sum += AgeInDays(o.OpenedAt, now)
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

// IsElevatedAverage — предупреждение по портфелю: средний возраст выше порога.
func IsElevatedAverage(avg float64) bool {
	return avg > constants.ElevatedAverageAgeDays
}
