package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"service-order-system/internal/entities"
	"service-order-system/pkg/constants"
)

var now = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func TestAgeInDays(t *testing.T) {
	tests := []struct {
		name     string
		openedAt time.Time
		want     int64
	}{
		{"same moment", now, 0},
		{"just under a day", now.Add(-23*time.Hour - 59*time.Minute), 0},
		{"exactly one day", now.Add(-24 * time.Hour), 1},
		{"ten days", daysAgo(10), 10},
		{"future by an hour", now.Add(time.Hour), -1},
		{"future by two days", now.Add(48 * time.Hour), -2},
		{"future by one millisecond", now.Add(time.Millisecond), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeInDays(tt.openedAt, now))
		})
	}
}

func TestAgeInDays_IdempotentAndMonotonic(t *testing.T) {
	opened := daysAgo(3).Add(-5 * time.Hour)
	assert.Equal(t, AgeInDays(opened, now), AgeInDays(opened, now))

	prev := AgeInDays(opened, now)
	for step := 1; step <= 200; step++ {
		cur := AgeInDays(opened, now.Add(time.Duration(step)*37*time.Minute))
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestAge_TenDaysIsUrgentNotCritical(t *testing.T) {
	res := Age(daysAgo(10), now)
	assert.Equal(t, int64(10), res.Days)
	assert.True(t, res.Urgent)
	assert.False(t, res.Critical)
	assert.Equal(t, TierUrgent, res.Tier)
}

func TestAge_Tiers(t *testing.T) {
	assert.Equal(t, TierNormal, Age(daysAgo(7), now).Tier)
	assert.Equal(t, TierUrgent, Age(daysAgo(8), now).Tier)
	assert.Equal(t, TierUrgent, Age(daysAgo(90), now).Tier)

	critical := Age(daysAgo(91), now)
	assert.Equal(t, TierCritical, critical.Tier)
	assert.True(t, critical.Urgent)
	assert.True(t, critical.Critical)
}

func TestAverageOpenAge(t *testing.T) {
	orders := []entities.ServiceOrder{
		{Status: constants.StatusActive, OpenedAt: daysAgo(10)},
		{Status: constants.StatusPaused, OpenedAt: daysAgo(50)},
		{Status: constants.StatusCompleted, OpenedAt: daysAgo(400)},
		{Status: constants.StatusCancelled, OpenedAt: daysAgo(400)},
	}
	avg, n := AverageOpenAge(orders, now)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 30.0, avg, 0.0001)
	assert.False(t, IsElevatedAverage(avg))
	assert.True(t, IsElevatedAverage(30.5))

	avg, n = AverageOpenAge(nil, now)
	assert.Zero(t, avg)
	assert.Zero(t, n)
}
