package constants

import "time"

//============== AGING ==============

const (
	// Заявка срочная, если открыта дольше UrgentAfterDays дней.
	UrgentAfterDays int64 = 7
	// Критическая — дольше CriticalAfterDays; учитывается в KPI "критические заявки".
	CriticalAfterDays int64 = 90
	// Средний возраст открытых заявок выше порога — предупреждение по портфелю.
	ElevatedAverageAgeDays float64 = 30

	// Окно для среднего времени решения. Ограничение производительности, не бизнес-правило.
	ResolutionLookback = 5 * 365 * 24 * time.Hour

	// Сколько заявок показывать в карточке техника.
	WorkloadPreviewSize = 5
)

//============== ROUTES ==============

// Маршрут, на который уходит пользователь с неизвестной ролью.
const FallbackRoute = "/login"

//============== CACHE KEYS ==============

const (
	// Формат: dashboard:kpis:<hash фильтра> -> JSON
	CacheKeyDashboardKPIs = "dashboard:kpis:%s"
	// Шаблон для инвалидации всех KPI-ключей.
	CacheKeyDashboardKPIsPattern = "dashboard:kpis:*"
)

//============== NOTIFY ==============

// Канал Postgres LISTEN/NOTIFY для изменений заявок.
const OrderChangesChannel = "service_orders_changes"
