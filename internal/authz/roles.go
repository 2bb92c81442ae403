package authz

import (
	"regexp"
	"strings"

	apperrors "service-order-system/pkg/errors"
)

// Role — роль пользователя. Назначается при создании аккаунта и не меняется в сессии.
type Role string

const (
	RoleManager            Role = "MANAGER"
	RoleWarrantyConsultant Role = "WARRANTY_CONSULTANT"
	RoleSalesConsultant    Role = "SALES_CONSULTANT"
	RoleShopSupervisor     Role = "SHOP_SUPERVISOR"
	RoleTechnician         Role = "TECHNICIAN"
	RoleWarehouse          Role = "WAREHOUSE"
	RolePurchasing         Role = "PURCHASING"
	RoleFleet              Role = "FLEET"
)

// AllRoles — полный список ролей в порядке объявления.
var AllRoles = []Role{
	RoleManager,
	RoleWarrantyConsultant,
	RoleSalesConsultant,
	RoleShopSupervisor,
	RoleTechnician,
	RoleWarehouse,
	RolePurchasing,
	RoleFleet,
}

var roleFormat = regexp.MustCompile(`^[A-Z][A-Z0-9_]{0,63}$`)

// ParseRole разбирает сырое значение роли на границе системы.
// Пустое или синтаксически кривое значение — ValidationError.
// Корректное по форме, но незнакомое значение возвращается как есть:
// у такой роли просто нет прав.
func ParseRole(raw string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return "", apperrors.NewValidationError("role", "роль не указана")
	}
	if !roleFormat.MatchString(normalized) {
		return "", apperrors.NewValidationError("role", "недопустимый формат роли: %q", raw)
	}
	return Role(normalized), nil
}

// MustBeKnown возвращает UnknownRoleError для ролей вне перечисления.
func (r Role) MustBeKnown() error {
	if !r.IsKnown() {
		return &apperrors.UnknownRoleError{Role: string(r)}
	}
	return nil
}

func (r Role) IsKnown() bool {
	_, ok := defaultRegistry[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
