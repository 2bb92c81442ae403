package dto

import "service-order-system/internal/authz"

// AccessRoutesDTO — что видит текущая роль: маршруты, стартовая страница, возможности.
type AccessRoutesDTO struct {
	Role         authz.Role         `json:"role"`
	Known        bool               `json:"known"`
	Routes       []string           `json:"routes"`
	DefaultRoute string             `json:"default_route"`
	Capabilities []authz.Capability `json:"capabilities"`
	Reason       string             `json:"reason,omitempty"`
}

type AccessCheckDTO struct {
	Route   string `json:"route"`
	Allowed bool   `json:"allowed"`
}
