package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page — окно списка заявок. Number начинается с 1.
type Page struct {
	Limit  uint64
	Offset uint64
	Number uint64
}

// ParsePage читает limit, page и offset. Явный offset важнее page,
// номер страницы тогда вычисляется из него. Кривые значения заменяются умолчаниями.
func ParsePage(values url.Values) Page {
	p := Page{Limit: DefaultPageSize, Number: 1}

	if n, ok := positiveParam(values, "limit"); ok {
		p.Limit = min(n, MaxPageSize)
	}

	if off, ok := uintParam(values, "offset"); ok {
		p.Offset = off
		p.Number = off/p.Limit + 1
		return p
	}

	if n, ok := positiveParam(values, "page"); ok {
		p.Number = n
	}
	p.Offset = (p.Number - 1) * p.Limit
	return p
}

func uintParam(values url.Values, key string) (uint64, bool) {
	raw := values.Get(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	return n, err == nil
}

func positiveParam(values url.Values, key string) (uint64, bool) {
	n, ok := uintParam(values, key)
	return n, ok && n > 0
}
