package seeders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"service-order-system/pkg/constants"
)

func TestDemoOrders_CoverCatalog(t *testing.T) {
	seen := map[constants.OrderStatus]bool{}
	numbers := map[string]bool{}

	for _, o := range demoOrders {
		assert.True(t, o.Status.IsValid(), o.Number)
		assert.True(t, o.Type.IsValid(), o.Number)
		assert.Less(t, o.Technician, len(demoTechnicians), o.Number)
		assert.False(t, numbers[o.Number], "дубликат номера %s", o.Number)
		assert.NotPanics(t, func() {
			assert.False(t, mustDecimal(o.Labor).IsNegative())
			mustDecimal(o.Parts)
			mustDecimal(o.Travel)
		}, o.Number)

		seen[o.Status] = true
		numbers[o.Number] = true
	}

	for _, info := range constants.StatusCatalog() {
		assert.True(t, seen[info.Status], "нет демо-заявки в статусе %s", info.Status)
	}
}
