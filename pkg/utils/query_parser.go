package utils

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"service-order-system/pkg/constants"
	apperrors "service-order-system/pkg/errors"
	"service-order-system/pkg/types"
)

// ParseOrderFilter собирает фильтр заявок из query-параметров.
// Пустые параметры игнорируются, кривые дают ValidationError.
func ParseOrderFilter(values url.Values) (types.OrderFilter, error) {
	var f types.OrderFilter

	if raw := strings.TrimSpace(values.Get("type")); raw != "" {
		t := constants.OrderType(strings.ToUpper(raw))
		if !t.IsValid() {
			return f, apperrors.NewValidationError("type", "неизвестный тип заявки: %q", raw)
		}
		f.Type = ToPtr(t)
	}

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		s, err := constants.ParseOrderStatus(raw)
		if err != nil {
			return f, apperrors.NewValidationError("status", "%v", err)
		}
		f.Status = ToPtr(s)
	}

	f.Search = strings.TrimSpace(values.Get("search"))

	var err error
	if f.DateFrom, err = parseTimeParam(values, "date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = parseTimeParam(values, "date_to"); err != nil {
		return f, err
	}
	if f.TechnicianID, err = parseUUIDParam(values, "technician_id"); err != nil {
		return f, err
	}
	if f.ConsultantID, err = parseUUIDParam(values, "consultant_id"); err != nil {
		return f, err
	}
	return f, nil
}

func parseTimeParam(values url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return ToPtr(t), nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperrors.NewValidationError(key, "ожидается дата в формате RFC3339 или YYYY-MM-DD")
	}
	return ToPtr(t), nil
}

func parseUUIDParam(values url.Values, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(key, "некорректный UUID")
	}
	return ToPtr(id), nil
}
