package types

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-order-system/pkg/constants"
)

// OrderFilter — параметры выборки заявок из хранилища.
// http://localhost:8080/api/orders?search=JD-5075&type=WARRANTY&status=PAUSED&date_from=2026-01-01T00:00:00Z&page=1&limit=20
type OrderFilter struct {
	Type         *constants.OrderType   `json:"type,omitempty"`
	Status       *constants.OrderStatus `json:"status,omitempty"`
	Search       string                 `json:"search,omitempty"`
	DateFrom     *time.Time             `json:"date_from,omitempty"`
	DateTo       *time.Time             `json:"date_to,omitempty"`
	TechnicianID *uuid.UUID             `json:"technician_id,omitempty"`
	ConsultantID *uuid.UUID             `json:"consultant_id,omitempty"`
}

// CacheKey — стабильный ключ фильтра для кеша.
func (f OrderFilter) CacheKey() string {
	var b strings.Builder
	if f.Type != nil {
		fmt.Fprintf(&b, "type=%s;", *f.Type)
	}
	if f.Status != nil {
		fmt.Fprintf(&b, "status=%s;", *f.Status)
	}
	if f.Search != "" {
		fmt.Fprintf(&b, "search=%s;", strings.ToLower(f.Search))
	}
	if f.DateFrom != nil {
		fmt.Fprintf(&b, "from=%d;", f.DateFrom.Unix())
	}
	if f.DateTo != nil {
		fmt.Fprintf(&b, "to=%d;", f.DateTo.Unix())
	}
	if f.TechnicianID != nil {
		fmt.Fprintf(&b, "tech=%s;", f.TechnicianID)
	}
	if f.ConsultantID != nil {
		fmt.Fprintf(&b, "cons=%s;", f.ConsultantID)
	}
	if b.Len() == 0 {
		return "all"
	}
	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}
