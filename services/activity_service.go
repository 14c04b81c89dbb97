package services

import (
	"context"
	"errors"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"gorm.io/gorm"
)

type ActivityInput struct {
	Type        string  `json:"type" binding:"required"`
	DurationMin float64 `json:"duration_min" binding:"required"`
	Intensity   string  `json:"intensity"`
	Calories    float64 `json:"calories"`
	PerformedAt string  `json:"performed_at"` // YYYY-MM-DD, defaults to today
	Notes       string  `json:"notes"`
}

type ActivityService struct {
	db         *gorm.DB
	milestones *MilestoneService
}

func NewActivityService(db *gorm.DB, ms *MilestoneService) *ActivityService {
	return &ActivityService{db: db, milestones: ms}
}

func (in *ActivityInput) validate() (time.Time, error) {
	if in.DurationMin <= 0 || in.DurationMin > 24*60 {
		return time.Time{}, errors.New("duration must be between 1 and 1440 minutes")
	}
	switch in.Intensity {
	case "":
		in.Intensity = "moderate"
	case "low", "moderate", "high":
	default:
		return time.Time{}, errors.New("intensity must be low, moderate or high")
	}
	if in.Calories < 0 {
		return time.Time{}, errors.New("calories cannot be negative")
	}

	performedAt := time.Now()
	if in.PerformedAt != "" {
		t, err := time.ParseInLocation("2006-01-02", in.PerformedAt, time.Local)
		if err != nil {
			return time.Time{}, errors.New("performed_at must be YYYY-MM-DD")
		}
		if t.After(time.Now()) {
			return time.Time{}, errors.New("performed_at cannot be in the future")
		}
		performedAt = t
	}
	return performedAt, nil
}

func (s *ActivityService) Add(
	ctx context.Context, userID uint, input ActivityInput,
) (*models.Activity, []models.Milestone, error) {

	performedAt, err := input.validate()
	if err != nil {
		return nil, nil, err
	}

	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return nil, nil, err
	}

	act := models.Activity{
		ProfileID:   profile.ID,
		Type:        input.Type,
		DurationMin: input.DurationMin,
		Intensity:   input.Intensity,
		Calories:    input.Calories,
		PerformedAt: performedAt,
		Notes:       input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&act).Error; err != nil {
		return nil, nil, err
	}

	milestones, err := s.milestones.CheckActivity(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	return &act, milestones, nil
}

func (s *ActivityService) List(
	ctx context.Context, userID uint, from, to time.Time, limit int,
) ([]models.Activity, error) {

	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Where("profile_id = ?", profile.ID)
	if !from.IsZero() {
		q = q.Where("performed_at >= ?", dayStart(from))
	}
	if !to.IsZero() {
		q = q.Where("performed_at <= ?", dayEnd(to))
	}
	if limit <= 0 {
		limit = 100
	}

	var rows []models.Activity
	err = q.Order("performed_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (s *ActivityService) Update(
	ctx context.Context, userID uint, activityID uint, input ActivityInput,
) (*models.Activity, error) {

	performedAt, err := input.validate()
	if err != nil {
		return nil, err
	}

	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	var act models.Activity
	if err := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", activityID, profile.ID).
		First(&act).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("activity not found")
		}
		return nil, err
	}

	act.Type = input.Type
	act.DurationMin = input.DurationMin
	act.Intensity = input.Intensity
	act.Calories = input.Calories
	act.PerformedAt = performedAt
	act.Notes = input.Notes

	if err := s.db.WithContext(ctx).Save(&act).Error; err != nil {
		return nil, err
	}
	return &act, nil
}

func (s *ActivityService) Delete(ctx context.Context, userID uint, activityID uint) error {
	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", activityID, profile.ID).
		Delete(&models.Activity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("activity not found")
	}
	return nil
}
