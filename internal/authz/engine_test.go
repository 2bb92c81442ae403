package authz

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"service-order-system/pkg/constants"
	apperrors "service-order-system/pkg/errors"
)

func TestEngine_EveryRoleHasRoutesAndReachableDefault(t *testing.T) {
	e := NewEngine()
	for _, role := range AllRoles {
		routes := e.GetPermittedRoutes(role)
		assert.NotEmpty(t, routes, role)

		def := e.GetDefaultRoute(role)
		assert.NotEqual(t, constants.FallbackRoute, def, role)
		assert.True(t, e.HasPermission(role, def), "роль %s не может открыть свой маршрут по умолчанию %s", role, def)
	}
}

func TestEngine_UnknownRoleHasNothing(t *testing.T) {
	e := NewEngine()
	for _, role := range []Role{"", "ADMIN", "manager", "SUPERUSER"} {
		routes := e.GetPermittedRoutes(role)
		assert.NotNil(t, routes)
		assert.Empty(t, routes)
		assert.Equal(t, constants.FallbackRoute, e.GetDefaultRoute(role))

		for _, r := range defaultRegistry[RoleManager].Routes {
			assert.False(t, e.HasPermission(role, r), "%q -> %s", role, r)
		}
		assert.Empty(t, e.Capabilities(role))
	}
}

func TestEngine_PrefixMatch(t *testing.T) {
	e := NewEngine()

	assert.True(t, e.HasPermission(RoleSalesConsultant, "/os/editar/abc123"))
	assert.True(t, e.HasPermission(RoleSalesConsultant, "/os/editar"))
	assert.True(t, e.HasPermission(RoleTechnician, "/os/detalhes/42"))
	assert.False(t, e.HasPermission(RoleTechnician, "/os/editar/42"))
	assert.False(t, e.HasPermission(RoleTechnician, ""))
}

func TestEngine_PrefixMatchWithCustomRegistry(t *testing.T) {
	e := NewEngineWithRegistry(map[Role]PermissionSet{
		"X": {Routes: []string{"/os/editar"}, DefaultRoute: "/os/editar"},
	})
	assert.True(t, e.HasPermission("X", "/os/editar/abc123"))
	assert.False(t, e.HasPermission("X", "/os"))
	assert.False(t, e.HasPermission("X", "/compras/os/editar"))
}

func TestEngine_TechnicianRoutes(t *testing.T) {
	e := NewEngine()
	assert.False(t, e.HasPermission(RoleTechnician, "/compras"))
	assert.True(t, e.HasPermission(RoleTechnician, "/tecnico"))
}

func TestEngine_GetPermittedRoutesReturnsCopy(t *testing.T) {
	e := NewEngine()
	routes := e.GetPermittedRoutes(RoleTechnician)
	routes[0] = "/hacked"
	assert.NotContains(t, e.GetPermittedRoutes(RoleTechnician), "/hacked")
}

func TestEngine_Capabilities(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name string
		fn   func(Role) bool
		yes  []Role
	}{
		{"create order", e.CanCreateOrder, []Role{RoleManager, RoleWarrantyConsultant, RoleSalesConsultant, RoleShopSupervisor}},
		{"edit order", e.CanEditOrder, []Role{RoleManager, RoleWarrantyConsultant, RoleSalesConsultant, RoleShopSupervisor}},
		{"assign technician", e.CanAssignTechnician, []Role{RoleManager, RoleShopSupervisor}},
		{"change status", e.CanChangeStatus, []Role{RoleManager, RoleWarrantyConsultant, RoleSalesConsultant, RoleShopSupervisor, RoleTechnician}},
		{"manage parts", e.CanManageParts, []Role{RoleManager, RoleWarehouse, RolePurchasing}},
		{"view financials", e.CanViewFinancials, []Role{RoleManager, RoleWarrantyConsultant, RoleSalesConsultant}},
		{"manage users", e.CanManageUsers, []Role{RoleManager}},
		{"manager tier", e.IsManagerTier, []Role{RoleManager, RoleShopSupervisor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := map[Role]bool{}
			for _, r := range tt.yes {
				allowed[r] = true
			}
			for _, role := range AllRoles {
				assert.Equal(t, allowed[role], tt.fn(role), role)
			}
			assert.False(t, tt.fn("UNKNOWN"))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("  technician ")
	require.NoError(t, err)
	assert.Equal(t, RoleTechnician, r)
	assert.True(t, r.IsKnown())
	assert.NoError(t, r.MustBeKnown())

	r, err = ParseRole("AUDITOR")
	require.NoError(t, err, "корректная по форме роль не должна отклоняться")
	assert.False(t, r.IsKnown())
	var unknown *apperrors.UnknownRoleError
	assert.True(t, errors.As(r.MustBeKnown(), &unknown))

	for _, raw := range []string{"", "   ", "sales consultant", "1ROLE", "ROLE;DROP"} {
		_, err := ParseRole(raw)
		var ve *apperrors.ValidationError
		assert.True(t, errors.As(err, &ve), "ожидалась ValidationError для %q", raw)
	}
}

func TestGatekeeper_WarnsOnUnknownRole(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	g := NewGatekeeper(nil, zap.New(core))

	assert.False(t, g.CanAccess("AUDITOR", RouteDashboard))
	assert.False(t, g.Can("AUDITOR", CapManageUsers))
	assert.Equal(t, 2, logs.Len())

	assert.True(t, g.CanAccess(RoleManager, RouteDashboard))
	assert.False(t, g.CanAccess("", RouteDashboard))
	assert.Equal(t, 2, logs.Len())
}

func TestGatekeeper_CheckReturnsUnknownRoleError(t *testing.T) {
	g := NewGatekeeper(nil, zap.NewNop())

	assert.NoError(t, g.Check(RoleWarehouse))

	var unknown *apperrors.UnknownRoleError
	require.ErrorAs(t, g.Check("AUDITOR"), &unknown)
	assert.Equal(t, "AUDITOR", unknown.Role)
}

func TestEngine_RouteNamesOverlapOnlyAsSubRoutes(t *testing.T) {
	seen := map[string]struct{}{}
	for _, role := range AllRoles {
		for _, r := range NewEngine().GetPermittedRoutes(role) {
			seen[r] = struct{}{}
		}
	}

	for a := range seen {
		for b := range seen {
			if a == b || !strings.HasPrefix(b, a) {
				continue
			}
			assert.True(t, strings.HasPrefix(b, a+"/"), "%q перекрывает %q", a, b)
		}
	}

	e := NewEngine()
	assert.True(t, e.HasPermission(RoleTechnician, RouteTechnicianApp))
	assert.False(t, e.HasPermission(RoleTechnician, RouteTechnicians))
}
