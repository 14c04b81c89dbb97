package services

import (
	"context"
	"testing"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMIScoreFromBMI(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		want float64
	}{
		{"normal band lower edge", 18.5, 100},
		{"normal band middle", 22.0, 100},
		{"just under 25", 24.9, 100},
		{"overweight 27 loses 20", 27.0, 80},
		{"underweight 16.5 loses 20", 16.5, 80},
		{"extreme bmi floors at zero", 40.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, bmiScoreFromBMI(tt.bmi), 0.01)
		})
	}
}

func TestProgressScore(t *testing.T) {
	assert.InDelta(t, 75.0, progressScore(90, 75, 70), 0.01)
	assert.InDelta(t, 0.0, progressScore(90, 95, 70), 0.01, "moving away from goal scores 0")
	assert.InDelta(t, 100.0, progressScore(90, 65, 70), 0.01, "overshooting caps at 100")
	assert.InDelta(t, 100.0, progressScore(80, 80, 80), 0.01, "started at goal")
	// gain goal: 60 -> 70, currently 65
	assert.InDelta(t, 50.0, progressScore(60, 65, 70), 0.01)
}

func TestActivityScoreFromLog(t *testing.T) {
	acts := []models.Activity{
		{DurationMin: 60, Intensity: "moderate"},
		{DurationMin: 60, Intensity: "moderate"},
		{DurationMin: 30, Intensity: "moderate"},
	}
	// 150 weighted minutes vs light target of 150 -> 100
	assert.InDelta(t, 100.0, activityScoreFromLog(acts, "light"), 0.01)
	// moderate level raises the bar to 187.5
	assert.InDelta(t, 80.0, activityScoreFromLog(acts, "moderate"), 0.01)

	low := []models.Activity{{DurationMin: 60, Intensity: "low"}}
	assert.InDelta(t, 20.0, activityScoreFromLog(low, "light"), 0.01)

	high := []models.Activity{{DurationMin: 200, Intensity: "high"}}
	assert.InDelta(t, 100.0, activityScoreFromLog(high, "light"), 0.01, "capped at 100")

	assert.InDelta(t, 0.0, activityScoreFromLog(nil, "active"), 0.01)
}

func TestComputeScoreWeighting(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestUserAndProfile(t, db)

	profile.GoalWeightKg = 70
	require.NoError(t, db.Save(profile).Error)

	// weight history: 90 two weeks ago, 80 today
	require.NoError(t, db.Create(&models.WeightEntry{
		ProfileID: profile.ID, WeightKg: 90, RecordedAt: daysAgo(14),
	}).Error)
	require.NoError(t, db.Create(&models.WeightEntry{
		ProfileID: profile.ID, WeightKg: 80, RecordedAt: daysAgo(0),
	}).Error)

	// some activity this week
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Activity{
			ProfileID: profile.ID, Type: "running", DurationMin: 45,
			Intensity: "moderate", PerformedAt: daysAgo(i),
		}).Error)
	}

	svc := NewWellnessService(db)
	snap, err := svc.ComputeScore(context.Background(), profile.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, profile.ID, snap.ProfileID)
	for _, sub := range []float64{snap.BMIScore, snap.ActivityScore, snap.ProgressScore, snap.HabitScore} {
		assert.GreaterOrEqual(t, sub, 0.0)
		assert.LessOrEqual(t, sub, 100.0)
	}

	// total honors the 30/30/20/20 weighting of its own sub-scores
	want := 0.30*snap.BMIScore + 0.30*snap.ActivityScore + 0.20*snap.ProgressScore + 0.20*snap.HabitScore
	assert.InDelta(t, want, snap.Total, 0.01)

	// BMI 80kg @ 180cm = 24.7 -> inside normal band
	assert.InDelta(t, 100.0, snap.BMIScore, 0.01)

	// progress: 90 -> 80 towards 70 is half way
	assert.InDelta(t, 50.0, snap.ProgressScore, 0.01)
}

func TestComputeScoreUpsertsDailySnapshot(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestUserAndProfile(t, db)

	svc := NewWellnessService(db)

	_, err := svc.ComputeScore(context.Background(), profile.ID, time.Now())
	require.NoError(t, err)
	_, err = svc.ComputeScore(context.Background(), profile.ID, time.Now())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.WellnessScore{}).
		Where("profile_id = ?", profile.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "same day recompute must not duplicate rows")
}

func TestComputeScoreOverwritesWithZero(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestUserAndProfile(t, db)

	svc := NewWellnessService(db)

	act := models.Activity{
		ProfileID:   profile.ID,
		Type:        "running",
		DurationMin: 150,
		Intensity:   "high",
		PerformedAt: time.Now(),
	}
	require.NoError(t, db.Create(&act).Error)

	first, err := svc.ComputeScore(context.Background(), profile.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, 100.0, first.ActivityScore)

	// record removed: the recompute must drop the stored sub-score to 0
	require.NoError(t, db.Unscoped().Delete(&act).Error)

	second, err := svc.ComputeScore(context.Background(), profile.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, second.ActivityScore)
	assert.Equal(t, 0.0, second.HabitScore)

	var stored models.WellnessScore
	require.NoError(t, db.Where("profile_id = ?", profile.ID).First(&stored).Error)
	assert.Equal(t, 0.0, stored.ActivityScore)
	assert.Equal(t, 0.0, stored.HabitScore)
	assert.Equal(t, second.Total, stored.Total)
	assert.InDelta(t,
		0.30*stored.BMIScore+0.30*stored.ActivityScore+
			0.20*stored.ProgressScore+0.20*stored.HabitScore,
		stored.Total, 0.01, "stored sub-scores must add up to the stored total")
}

func TestHistoryOrdersByDate(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestUserAndProfile(t, db)

	svc := NewWellnessService(db)
	for i := 3; i >= 1; i-- {
		_, err := svc.ComputeScore(context.Background(), profile.ID, daysAgo(i))
		require.NoError(t, err)
	}

	rows, err := svc.History(context.Background(), profile.ID, daysAgo(7), time.Now())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Date.Before(rows[1].Date))
	assert.True(t, rows[1].Date.Before(rows[2].Date))
}

func TestMissingProfileDataScoresNeutral(t *testing.T) {
	db := newTestDB(t)
	user := &models.User{Email: "bare@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	profile := &models.HealthProfile{UserID: user.ID} // no height/weight/goal
	require.NoError(t, db.Create(profile).Error)

	svc := NewWellnessService(db)
	snap, err := svc.ComputeScore(context.Background(), profile.ID, time.Now())
	require.NoError(t, err)

	assert.InDelta(t, 50.0, snap.BMIScore, 0.01)
	assert.InDelta(t, 50.0, snap.ProgressScore, 0.01)
	assert.InDelta(t, 0.0, snap.ActivityScore, 0.01)
	assert.InDelta(t, 0.0, snap.HabitScore, 0.01)
}
