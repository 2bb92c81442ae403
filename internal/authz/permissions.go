// internal/authz/permissions.go
package authz

// --- МАРШРУТЫ ПРИЛОЖЕНИЯ ---

const (
	RouteDashboard     = "/dashboard"
	RouteOrders        = "/os"
	RouteOrderCreate   = "/os/nova"
	RouteOrderEdit     = "/os/editar"
	RouteOrderDetails  = "/os/detalhes"
	RoutePipeline      = "/pipeline"
	RouteAgenda        = "/agenda"
	RouteTechnicians   = "/equipe"
	RouteTechnicianApp = "/tecnico"
	RouteClients       = "/clientes"
	RouteMachines      = "/maquinas"
	RouteWarranty      = "/garantia"
	RouteParts         = "/pecas"
	RouteStock         = "/estoque"
	RoutePurchasing    = "/compras"
	RouteFleet         = "/frota"
	RouteReports       = "/relatorios"
	RouteUsers         = "/usuarios"
	RouteSettings      = "/configuracoes"
)

// --- ВОЗМОЖНОСТИ (capabilities) ---

// Capability — именованное действие. Проверяется по статическому списку ролей,
// а не выводится из таблицы маршрутов.
type Capability string

const (
	CapCreateOrder      Capability = "orders:create"
	CapEditOrder        Capability = "orders:update"
	CapAssignTechnician Capability = "orders:assign"
	CapChangeStatus     Capability = "orders:status"
	CapManageParts      Capability = "parts:manage"
	CapViewFinancials   Capability = "orders:financials"
	CapManageUsers      Capability = "users:manage"
	CapManagerTier      Capability = "tier:manager"
)

// AllCapabilities — в порядке вывода в /access/routes.
var AllCapabilities = []Capability{
	CapCreateOrder,
	CapEditOrder,
	CapAssignTechnician,
	CapChangeStatus,
	CapManageParts,
	CapViewFinancials,
	CapManageUsers,
	CapManagerTier,
}

// PermissionSet — всё, что разрешено роли.
type PermissionSet struct {
	Routes       []string
	DefaultRoute string
	Capabilities map[Capability]bool
}

func caps(list ...Capability) map[Capability]bool {
	m := make(map[Capability]bool, len(list))
	for _, c := range list {
		m[c] = true
	}
	return m
}

// defaultRegistry — таблица ролей. Загружается один раз при старте процесса.
// При изменении маршрутов держите capabilities согласованными вручную.
var defaultRegistry = map[Role]PermissionSet{
	RoleManager: {
		Routes: []string{
			RouteDashboard, RouteOrders, RouteOrderCreate, RouteOrderEdit, RouteOrderDetails,
			RoutePipeline, RouteAgenda, RouteTechnicians, RouteClients, RouteMachines,
			RouteWarranty, RouteParts, RouteStock, RoutePurchasing, RouteFleet,
			RouteReports, RouteUsers, RouteSettings,
		},
		DefaultRoute: RouteDashboard,
		Capabilities: caps(
			CapCreateOrder, CapEditOrder, CapAssignTechnician, CapChangeStatus,
			CapManageParts, CapViewFinancials, CapManageUsers, CapManagerTier,
		),
	},
	RoleWarrantyConsultant: {
		Routes: []string{
			RouteDashboard, RouteOrders, RouteOrderCreate, RouteOrderEdit, RouteOrderDetails,
			RoutePipeline, RouteWarranty, RouteClients, RouteMachines,
		},
		DefaultRoute: RouteWarranty,
		Capabilities: caps(CapCreateOrder, CapEditOrder, CapChangeStatus, CapViewFinancials),
	},
	RoleSalesConsultant: {
		Routes: []string{
			RouteDashboard, RouteOrders, RouteOrderCreate, RouteOrderEdit, RouteOrderDetails,
			RoutePipeline, RouteClients, RouteMachines,
		},
		DefaultRoute: RouteOrders,
		Capabilities: caps(CapCreateOrder, CapEditOrder, CapChangeStatus, CapViewFinancials),
	},
	RoleShopSupervisor: {
		Routes: []string{
			RouteDashboard, RouteOrders, RouteOrderCreate, RouteOrderEdit, RouteOrderDetails,
			RoutePipeline, RouteAgenda, RouteTechnicians, RouteParts,
		},
		DefaultRoute: RoutePipeline,
		Capabilities: caps(CapCreateOrder, CapEditOrder, CapAssignTechnician, CapChangeStatus, CapManagerTier),
	},
	RoleTechnician: {
		Routes:       []string{RouteTechnicianApp, RouteOrderDetails, RouteAgenda},
		DefaultRoute: RouteTechnicianApp,
		Capabilities: caps(CapChangeStatus),
	},
	RoleWarehouse: {
		Routes:       []string{RouteStock, RouteParts, RouteOrderDetails},
		DefaultRoute: RouteStock,
		Capabilities: caps(CapManageParts),
	},
	RolePurchasing: {
		Routes:       []string{RoutePurchasing, RouteParts, RouteStock},
		DefaultRoute: RoutePurchasing,
		Capabilities: caps(CapManageParts),
	},
	RoleFleet: {
		Routes:       []string{RouteFleet, RouteMachines, RouteOrders, RouteOrderDetails},
		DefaultRoute: RouteFleet,
		Capabilities: caps(),
	},
}
