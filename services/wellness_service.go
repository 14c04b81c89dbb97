package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"
	"github.com/KristjanKelk/wellness-app-sub002/utils"

	"gorm.io/gorm"
)

// Composite weighting: 30% BMI + 30% activity + 20% progress + 20% habits.
const (
	weightBMI      = 0.30
	weightActivity = 0.30
	weightProgress = 0.20
	weightHabits   = 0.20

	activityWindowDays = 7
	habitWindowDays    = 14
	weeklyTargetMin    = 150 // WHO baseline, scaled by activity level
)

type WellnessService struct{ db *gorm.DB }

func NewWellnessService(db *gorm.DB) *WellnessService { return &WellnessService{db: db} }

// ComputeScore recalculates all sub-scores for the given day and upserts
// the snapshot row for (profile, date).
func (s *WellnessService) ComputeScore(ctx context.Context, profileID uint, date time.Time) (*models.WellnessScore, error) {
	var profile models.HealthProfile
	if err := s.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		return nil, err
	}

	day := dayStart(date)

	bmiScore := s.bmiSubScore(&profile)
	actScore, err := s.activitySubScore(ctx, &profile, day)
	if err != nil {
		return nil, err
	}
	progScore, err := s.progressSubScore(ctx, &profile)
	if err != nil {
		return nil, err
	}
	habitScore, err := s.habitSubScore(ctx, profileID, day)
	if err != nil {
		return nil, err
	}

	// assigned as a map so sub-scores that drop back to 0 overwrite the
	// previous snapshot (gorm skips zero struct fields)
	scores := map[string]interface{}{
		"bmi_score":      round2(bmiScore),
		"activity_score": round2(actScore),
		"progress_score": round2(progScore),
		"habit_score":    round2(habitScore),
		"total": round2(weightBMI*bmiScore +
			weightActivity*actScore +
			weightProgress*progScore +
			weightHabits*habitScore),
	}

	snap := models.WellnessScore{ProfileID: profileID, Date: day}
	err = s.db.WithContext(ctx).
		Where("profile_id = ? AND date = ?", profileID, day).
		Assign(scores).
		FirstOrCreate(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// History lists stored snapshots over a date range, oldest first.
func (s *WellnessService) History(ctx context.Context, profileID uint, from, to time.Time) ([]models.WellnessScore, error) {
	var rows []models.WellnessScore
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND date BETWEEN ? AND ?", profileID, dayStart(from), dayEnd(to)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// ---------- sub-scores ----------

// bmiSubScore is 100 inside the 18.5–25 band and loses 10 points per BMI
// unit of distance from it. Missing height/weight scores neutral 50.
func (s *WellnessService) bmiSubScore(p *models.HealthProfile) float64 {
	bmi, err := utils.CalculateBMI(p.HeightCm, p.CurrentWeightKg)
	if err != nil {
		return 50
	}
	return bmiScoreFromBMI(bmi)
}

func bmiScoreFromBMI(bmi float64) float64 {
	score := 100 - utils.BMIDistanceFromNormal(bmi)*10
	if score < 0 {
		return 0
	}
	return score
}

func (s *WellnessService) activitySubScore(ctx context.Context, p *models.HealthProfile, day time.Time) (float64, error) {
	from := day.AddDate(0, 0, -(activityWindowDays - 1))

	var acts []models.Activity
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND performed_at BETWEEN ? AND ?", p.ID, from, dayEnd(day)).
		Find(&acts).Error; err != nil {
		return 0, err
	}
	return activityScoreFromLog(acts, p.ActivityLevel), nil
}

func activityScoreFromLog(acts []models.Activity, level string) float64 {
	var weighted float64
	for _, a := range acts {
		weighted += a.DurationMin * intensityFactor(a.Intensity)
	}
	target := weeklyTargetMin * levelFactor(level)
	score := weighted / target * 100
	if score > 100 {
		return 100
	}
	return score
}

func intensityFactor(intensity string) float64 {
	switch intensity {
	case "low":
		return 0.5
	case "high":
		return 1.5
	default:
		return 1.0
	}
}

func levelFactor(level string) float64 {
	switch level {
	case "sedentary":
		return 0.75
	case "light":
		return 1.0
	case "active":
		return 1.5
	default: // moderate
		return 1.25
	}
}

// progressSubScore measures how much of the distance from the starting
// weight to the goal has been covered. Neutral 50 without a goal or
// history; works for gain goals too since the signs cancel.
func (s *WellnessService) progressSubScore(ctx context.Context, p *models.HealthProfile) (float64, error) {
	if p.GoalWeightKg <= 0 {
		return 50, nil
	}

	var first models.WeightEntry
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", p.ID).
		Order("recorded_at ASC").
		First(&first).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 50, nil
		}
		return 0, err
	}

	var latest models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", p.ID).
		Order("recorded_at DESC").
		First(&latest).Error; err != nil {
		return 0, err
	}

	return progressScore(first.WeightKg, latest.WeightKg, p.GoalWeightKg), nil
}

func progressScore(start, current, goal float64) float64 {
	total := start - goal
	if math.Abs(total) < 0.001 {
		// already at goal when tracking started
		return 100
	}
	frac := (start - current) / total
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 100
	}
	return frac * 100
}

// habitSubScore is the share of the last habitWindowDays days with at
// least one weight or activity record.
func (s *WellnessService) habitSubScore(ctx context.Context, profileID uint, day time.Time) (float64, error) {
	from := day.AddDate(0, 0, -(habitWindowDays - 1))

	logged := map[string]bool{}

	var weights []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND recorded_at BETWEEN ? AND ?", profileID, from, dayEnd(day)).
		Find(&weights).Error; err != nil {
		return 0, err
	}
	for _, w := range weights {
		logged[w.RecordedAt.Format("2006-01-02")] = true
	}

	var acts []models.Activity
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND performed_at BETWEEN ? AND ?", profileID, from, dayEnd(day)).
		Find(&acts).Error; err != nil {
		return 0, err
	}
	for _, a := range acts {
		logged[a.PerformedAt.Format("2006-01-02")] = true
	}

	return float64(len(logged)) / habitWindowDays * 100, nil
}
