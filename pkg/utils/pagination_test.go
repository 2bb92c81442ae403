package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Page
	}{
		{"умолчания", "", Page{Limit: DefaultPageSize, Offset: 0, Number: 1}},
		{"страница", "page=3&limit=10", Page{Limit: 10, Offset: 20, Number: 3}},
		{"limit ограничен сверху", "limit=500", Page{Limit: MaxPageSize, Offset: 0, Number: 1}},
		{"offset важнее page", "offset=45&limit=20&page=7", Page{Limit: 20, Offset: 45, Number: 3}},
		{"мусор игнорируется", "page=-1&limit=abc&offset=x", Page{Limit: DefaultPageSize, Offset: 0, Number: 1}},
		{"нулевые значения", "page=0&limit=0", Page{Limit: DefaultPageSize, Offset: 0, Number: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParsePage(values))
		})
	}
}
