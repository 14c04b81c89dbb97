package services

import (
	"context"
	"errors"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"gorm.io/gorm"
)

type WeightEntryInput struct {
	WeightKg   float64 `json:"weight_kg" binding:"required"`
	RecordedAt string  `json:"recorded_at"` // YYYY-MM-DD, defaults to today
	Notes      string  `json:"notes"`
}

type WeightService struct {
	db         *gorm.DB
	milestones *MilestoneService
}

func NewWeightService(db *gorm.DB, ms *MilestoneService) *WeightService {
	return &WeightService{db: db, milestones: ms}
}

// Add records a weight entry, keeps the profile's current weight in sync
// and runs the milestone triggers. Returns the entry plus any milestones
// the entry unlocked.
func (s *WeightService) Add(
	ctx context.Context, userID uint, input WeightEntryInput,
) (*models.WeightEntry, []models.Milestone, error) {

	if input.WeightKg < minWeightKg || input.WeightKg > maxWeightKg {
		return nil, nil, errors.New("weight must be between 20 and 300 kg")
	}

	recordedAt := time.Now()
	if input.RecordedAt != "" {
		t, err := time.ParseInLocation("2006-01-02", input.RecordedAt, time.Local)
		if err != nil {
			return nil, nil, errors.New("recorded_at must be YYYY-MM-DD")
		}
		if t.After(time.Now()) {
			return nil, nil, errors.New("recorded_at cannot be in the future")
		}
		recordedAt = t
	}

	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return nil, nil, err
	}

	entry := models.WeightEntry{
		ProfileID:  profile.ID,
		WeightKg:   input.WeightKg,
		RecordedAt: recordedAt,
		Notes:      input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, nil, err
	}

	// only a newest entry moves the current weight
	var newest models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("recorded_at DESC").
		First(&newest).Error; err == nil && newest.ID == entry.ID {
		profile.CurrentWeightKg = entry.WeightKg
		if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
			return nil, nil, err
		}
	}

	milestones, err := s.milestones.CheckWeightEntry(ctx, profile, &entry)
	if err != nil {
		return nil, nil, err
	}

	return &entry, milestones, nil
}

func (s *WeightService) List(
	ctx context.Context, userID uint, from, to time.Time, limit int,
) ([]models.WeightEntry, error) {

	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Where("profile_id = ?", profile.ID)
	if !from.IsZero() {
		q = q.Where("recorded_at >= ?", dayStart(from))
	}
	if !to.IsZero() {
		q = q.Where("recorded_at <= ?", dayEnd(to))
	}
	if limit <= 0 {
		limit = 100
	}

	var rows []models.WeightEntry
	err = q.Order("recorded_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (s *WeightService) Delete(ctx context.Context, userID uint, entryID uint) error {
	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profile.ID).
		Delete(&models.WeightEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("weight entry not found")
	}

	// keep the profile weight backed by an actual entry
	var newest models.WeightEntry
	err = s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("recorded_at DESC").
		First(&newest).Error
	switch {
	case err == nil:
		profile.CurrentWeightKg = newest.WeightKg
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile.CurrentWeightKg = 0
	default:
		return err
	}
	return s.db.WithContext(ctx).Save(profile).Error
}
