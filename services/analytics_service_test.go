package services

import (
	"context"
	"testing"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryAggregatesRange(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestUserAndProfile(t, db)

	weights := []struct {
		kg  float64
		ago int
	}{{82, 6}, {81, 3}, {79.5, 1}}
	for _, w := range weights {
		require.NoError(t, db.Create(&models.WeightEntry{
			ProfileID: profile.ID, WeightKg: w.kg, RecordedAt: daysAgo(w.ago),
		}).Error)
	}

	require.NoError(t, db.Create(&models.Activity{
		ProfileID: profile.ID, Type: "running", DurationMin: 30, Calories: 300,
		PerformedAt: daysAgo(2),
	}).Error)
	require.NoError(t, db.Create(&models.Activity{
		ProfileID: profile.ID, Type: "cycling", DurationMin: 45, Calories: 400,
		PerformedAt: daysAgo(1),
	}).Error)

	// outside the range, must be ignored
	require.NoError(t, db.Create(&models.WeightEntry{
		ProfileID: profile.ID, WeightKg: 90, RecordedAt: daysAgo(30),
	}).Error)

	svc := NewAnalyticsService(db)
	out, err := svc.Summary(context.Background(), profile.ID, daysAgo(7), time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Weight.Entries)
	assert.InDelta(t, 79.5, out.Weight.MinKg, 0.001)
	assert.InDelta(t, 82.0, out.Weight.MaxKg, 0.001)
	assert.InDelta(t, -2.5, out.Weight.NetChange, 0.001)
	assert.InDelta(t, 80.83, out.Weight.AvgKg, 0.01)

	assert.Equal(t, int64(2), out.Activity.Sessions)
	assert.InDelta(t, 75.0, out.Activity.TotalMinutes, 0.001)
	assert.InDelta(t, 700.0, out.Activity.TotalCalories, 0.001)
	assert.InDelta(t, 30.0, out.Activity.MinutesByType["running"], 0.001)
	assert.InDelta(t, 45.0, out.Activity.MinutesByType["cycling"], 0.001)

	// four distinct days carry records
	assert.Equal(t, 4, out.Metadata.DaysLogged)
	assert.Equal(t, 8, out.Metadata.DaysInRange)
}

func TestSummaryEmptyRange(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestUserAndProfile(t, db)

	svc := NewAnalyticsService(db)
	out, err := svc.Summary(context.Background(), profile.ID, daysAgo(7), time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(0), out.Weight.Entries)
	assert.Equal(t, int64(0), out.Activity.Sessions)
	assert.Equal(t, 0, out.Metadata.DaysLogged)
}

func TestWeeklyOverviewModes(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestUserAndProfile(t, db)

	svc := NewAnalyticsService(db)

	weekStart := dayStart(time.Now()).AddDate(0, 0, -6)

	_, err := svc.WeeklyOverview(context.Background(), profile.ID, weekStart, "bogus")
	assert.Error(t, err)

	require.NoError(t, db.Create(&models.WeightEntry{
		ProfileID: profile.ID, WeightKg: 80, RecordedAt: daysAgo(2),
	}).Error)
	require.NoError(t, db.Create(&models.Activity{
		ProfileID: profile.ID, Type: "yoga", DurationMin: 60, PerformedAt: daysAgo(2),
	}).Error)

	chart, err := svc.WeeklyOverview(context.Background(), profile.ID, weekStart, "chart")
	require.NoError(t, err)
	days, ok := chart.Days.([]DayChart)
	require.True(t, ok)
	require.Len(t, days, 7)

	key := daysAgo(2).Format("2006-01-02")
	var found bool
	for _, d := range days {
		if d.Date == key {
			found = true
			require.NotNil(t, d.WeightKg)
			assert.InDelta(t, 80.0, *d.WeightKg, 0.001)
			assert.InDelta(t, 60.0, d.ActivityMinutes, 0.001)
		}
	}
	assert.True(t, found)

	detailed, err := svc.WeeklyOverview(context.Background(), profile.ID, weekStart, "detailed")
	require.NoError(t, err)
	dd, ok := detailed.Days.([]DayDetailed)
	require.True(t, ok)
	require.Len(t, dd, 7)
	for _, d := range dd {
		_, hasWeight := d.Metrics["weight_kg"]
		_, hasActivity := d.Metrics["activity_minutes"]
		assert.True(t, hasWeight)
		assert.True(t, hasActivity)
	}
}
