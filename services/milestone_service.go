package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"gorm.io/gorm"
)

// Trigger distances for goal milestones, in kilograms.
const (
	goalReachedTolerance = 0.5
	goalWithinReachBand  = 2.0
	weightLossStepKg     = 5.0
	activityStreakDays   = 7
)

type MilestoneService struct{ db *gorm.DB }

func NewMilestoneService(db *gorm.DB) *MilestoneService { return &MilestoneService{db: db} }

func (s *MilestoneService) List(ctx context.Context, profileID uint) ([]models.Milestone, error) {
	var rows []models.Milestone
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("achieved_at DESC").
		Find(&rows).Error
	return rows, err
}

// CheckWeightEntry runs all weight-based triggers after a new entry and
// returns the milestones it created.
func (s *MilestoneService) CheckWeightEntry(
	ctx context.Context, profile *models.HealthProfile, entry *models.WeightEntry,
) ([]models.Milestone, error) {

	var created []models.Milestone

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.WeightEntry{}).
		Where("profile_id = ?", profile.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 1 {
		m, err := s.award(ctx, profile, models.MilestoneFirstWeight,
			"Logged your first weight entry", 0)
		if err != nil {
			return nil, err
		}
		if m != nil {
			created = append(created, *m)
		}
	}

	if profile.GoalWeightKg > 0 {
		diff := math.Abs(entry.WeightKg - profile.GoalWeightKg)
		switch {
		case diff <= goalReachedTolerance:
			m, err := s.award(ctx, profile, models.MilestoneGoalReached,
				fmt.Sprintf("Reached your goal weight of %.1f kg", profile.GoalWeightKg),
				profile.GoalWeightKg)
			if err != nil {
				return nil, err
			}
			if m != nil {
				created = append(created, *m)
			}
		case diff <= goalWithinReachBand:
			m, err := s.award(ctx, profile, models.MilestoneGoalWithinReach,
				fmt.Sprintf("Within %.1f kg of your goal weight", round2(diff)),
				profile.GoalWeightKg)
			if err != nil {
				return nil, err
			}
			if m != nil {
				created = append(created, *m)
			}
		}
	}

	var first models.WeightEntry
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("recorded_at ASC").
		First(&first).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		lost := first.WeightKg - entry.WeightKg
		steps := int(lost / weightLossStepKg)
		for k := 1; k <= steps; k++ {
			kg := float64(k) * weightLossStepKg
			m, err := s.award(ctx, profile, models.MilestoneWeightLost,
				fmt.Sprintf("Lost %.0f kg since your first weigh-in", kg), kg)
			if err != nil {
				return nil, err
			}
			if m != nil {
				created = append(created, *m)
			}
		}
	}

	return created, nil
}

// CheckActivity runs activity-based triggers after a new activity record.
func (s *MilestoneService) CheckActivity(
	ctx context.Context, profile *models.HealthProfile,
) ([]models.Milestone, error) {

	var created []models.Milestone

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("profile_id = ?", profile.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 1 {
		m, err := s.award(ctx, profile, models.MilestoneFirstActivity,
			"Logged your first activity", 0)
		if err != nil {
			return nil, err
		}
		if m != nil {
			created = append(created, *m)
		}
	}

	streak, err := s.currentActivityStreak(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if streak >= activityStreakDays {
		m, err := s.award(ctx, profile, models.MilestoneActivityStreak,
			fmt.Sprintf("Active %d days in a row", activityStreakDays),
			activityStreakDays)
		if err != nil {
			return nil, err
		}
		if m != nil {
			created = append(created, *m)
		}
	}

	return created, nil
}

// currentActivityStreak counts consecutive days ending today with at
// least one activity.
func (s *MilestoneService) currentActivityStreak(ctx context.Context, profileID uint) (int, error) {
	from := dayStart(time.Now()).AddDate(0, 0, -(activityStreakDays - 1))

	var acts []models.Activity
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND performed_at >= ?", profileID, from).
		Find(&acts).Error; err != nil {
		return 0, err
	}

	days := map[string]bool{}
	for _, a := range acts {
		days[a.PerformedAt.Format("2006-01-02")] = true
	}

	streak := 0
	for d := dayStart(time.Now()); days[d.Format("2006-01-02")]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}

// award creates the milestone if no row with the same (profile, type,
// value) exists yet, and fans out an alert for new ones. Returns nil
// when the milestone was already achieved.
func (s *MilestoneService) award(
	ctx context.Context, profile *models.HealthProfile, typ, description string, value float64,
) (*models.Milestone, error) {

	var existing models.Milestone
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND type = ? AND value = ?", profile.ID, typ, value).
		First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := models.Milestone{
		ProfileID:   profile.ID,
		Type:        typ,
		Description: description,
		Value:       value,
		AchievedAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}

	EmitAlert(profile.UserID, "milestone", description)
	return &m, nil
}
