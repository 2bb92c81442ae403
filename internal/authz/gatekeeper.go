package authz

import (
	"go.uber.org/zap"
)

// Gatekeeper — обёртка над Engine для хоста: логирует роли, которых нет в таблице.
type Gatekeeper struct {
	engine *Engine
	logger *zap.Logger
}

func NewGatekeeper(engine *Engine, logger *zap.Logger) *Gatekeeper {
	if engine == nil {
		engine = NewEngine()
	}
	return &Gatekeeper{engine: engine, logger: logger}
}

func (g *Gatekeeper) Engine() *Engine {
	return g.engine
}

// CanAccess — может ли роль открыть маршрут.
func (g *Gatekeeper) CanAccess(role Role, route string) bool {
	g.warnUnknown(role)
	return g.engine.HasPermission(role, route)
}

// Can — есть ли у роли возможность.
func (g *Gatekeeper) Can(role Role, capability Capability) bool {
	g.warnUnknown(role)
	return g.engine.Can(role, capability)
}

// Check возвращает UnknownRoleError, если роли нет в таблице прав.
func (g *Gatekeeper) Check(role Role) error {
	if !g.engine.IsKnown(role) {
		return role.MustBeKnown()
	}
	return nil
}

func (g *Gatekeeper) warnUnknown(role Role) {
	if role == "" {
		return
	}
	if err := g.Check(role); err != nil {
		g.logger.Warn("Gatekeeper: доступ запрещён", zap.Error(err))
	}
}
