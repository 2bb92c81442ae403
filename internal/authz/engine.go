package authz

import (
	"strings"

	"service-order-system/pkg/constants"
)

// Engine отвечает на вопрос "может ли роль открыть маршрут / выполнить действие".
// Не паникует и не возвращает ошибок: неизвестная роль = нет прав.
type Engine struct {
	registry map[Role]PermissionSet
}

func NewEngine() *Engine {
	return &Engine{registry: defaultRegistry}
}

// NewEngineWithRegistry — для тестов и альтернативных таблиц.
func NewEngineWithRegistry(registry map[Role]PermissionSet) *Engine {
	if registry == nil {
		registry = map[Role]PermissionSet{}
	}
	return &Engine{registry: registry}
}

func (e *Engine) HasPermission(role Role, route string) bool {
	if role == "" || route == "" {
		return false
	}
	set, ok := e.registry[role]
	if !ok {
		return false
	}

	// Правило 1: точное совпадение
	for _, pattern := range set.Routes {
		if route == pattern {
			return true
		}
	}

	// Правило 2: префикс (детальные маршруты с id в конце)
	for _, pattern := range set.Routes {
		if matchPrefix(route, pattern) {
			return true
		}
	}
	return false
}

// matchPrefix: первые три сегмента запроса равны шаблону, либо запрос начинается с шаблона.
func matchPrefix(route, pattern string) bool {
	if pattern == "" {
		return false
	}
	segments := strings.Split(route, "/")
	if len(segments) >= 3 && strings.Join(segments[:3], "/") == pattern {
		return true
	}
	return strings.HasPrefix(route, pattern)
}

// GetPermittedRoutes — копия списка маршрутов роли. Для неизвестной роли пустой срез.
func (e *Engine) GetPermittedRoutes(role Role) []string {
	set, ok := e.registry[role]
	if !ok {
		return []string{}
	}
	out := make([]string, len(set.Routes))
	copy(out, set.Routes)
	return out
}

func (e *Engine) GetDefaultRoute(role Role) string {
	set, ok := e.registry[role]
	if !ok || set.DefaultRoute == "" {
		return constants.FallbackRoute
	}
	return set.DefaultRoute
}

func (e *Engine) Can(role Role, capability Capability) bool {
	set, ok := e.registry[role]
	if !ok {
		return false
	}
	return set.Capabilities[capability]
}

// Capabilities — список возможностей роли в стабильном порядке.
func (e *Engine) Capabilities(role Role) []Capability {
	out := make([]Capability, 0, len(AllCapabilities))
	for _, c := range AllCapabilities {
		if e.Can(role, c) {
			out = append(out, c)
		}
	}
	return out
}

func (e *Engine) IsKnown(role Role) bool {
	_, ok := e.registry[role]
	return ok
}

func (e *Engine) CanCreateOrder(role Role) bool      { return e.Can(role, CapCreateOrder) }
func (e *Engine) CanEditOrder(role Role) bool        { return e.Can(role, CapEditOrder) }
func (e *Engine) CanAssignTechnician(role Role) bool { return e.Can(role, CapAssignTechnician) }
func (e *Engine) CanChangeStatus(role Role) bool     { return e.Can(role, CapChangeStatus) }
func (e *Engine) CanManageParts(role Role) bool      { return e.Can(role, CapManageParts) }
func (e *Engine) CanViewFinancials(role Role) bool   { return e.Can(role, CapViewFinancials) }
func (e *Engine) CanManageUsers(role Role) bool      { return e.Can(role, CapManageUsers) }
func (e *Engine) IsManagerTier(role Role) bool       { return e.Can(role, CapManagerTier) }
