package services

import (
	"context"
	"errors"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"
	"github.com/KristjanKelk/wellness-app-sub002/utils"

	"gorm.io/gorm"
)

// Range checks applied to profile input. Weight bounds match the ones
// enforced on weight entries.
const (
	minHeightCm = 100.0
	maxHeightCm = 250.0
	minWeightKg = 20.0
	maxWeightKg = 300.0
)

type HealthProfileInput struct {
	Birthday      string  `json:"birthday"` // YYYY-MM-DD
	Gender        string  `json:"gender"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	GoalWeightKg  float64 `json:"goal_weight_kg"`
	ActivityLevel string  `json:"activity_level"`
}

type ProfileService struct{ db *gorm.DB }

func NewProfileService(db *gorm.DB) *ProfileService { return &ProfileService{db: db} }

// profileForUser fetches the user's profile, creating an empty one on
// first access so every authenticated user always has a row.
func profileForUser(ctx context.Context, db *gorm.DB, userID uint) (*models.HealthProfile, error) {
	var p models.HealthProfile
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(&p, models.HealthProfile{UserID: userID}).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) ProfileForUser(ctx context.Context, userID uint) (*models.HealthProfile, error) {
	return profileForUser(ctx, s.db, userID)
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (map[string]interface{}, error) {
	p, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"id":             p.ID,
		"gender":         p.Gender,
		"height_cm":      p.HeightCm,
		"weight_kg":      p.CurrentWeightKg,
		"goal_weight_kg": p.GoalWeightKg,
		"activity_level": p.ActivityLevel,
	}
	if !p.Birthday.IsZero() {
		out["birthday"] = p.Birthday.Format("2006-01-02")
		out["age"] = utils.CalculateAge(p.Birthday)
	}
	if bmi, err := utils.CalculateBMI(p.HeightCm, p.CurrentWeightKg); err == nil {
		out["bmi"] = round2(bmi)
		out["bmi_category"] = utils.BMICategory(bmi)
	}
	return out, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uint, input HealthProfileInput) error {
	p, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return err
	}

	if input.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", input.Birthday)
		if err != nil {
			return errors.New("birthday must be YYYY-MM-DD")
		}
		if birthday.After(time.Now()) {
			return errors.New("birthday must be in the past")
		}
		p.Birthday = birthday
	}

	if input.Gender != "" {
		switch input.Gender {
		case "male", "female", "other":
			p.Gender = input.Gender
		default:
			return errors.New("gender must be male, female or other")
		}
	}

	if input.HeightCm != 0 {
		if input.HeightCm < minHeightCm || input.HeightCm > maxHeightCm {
			return errors.New("height must be between 100 and 250 cm")
		}
		p.HeightCm = input.HeightCm
	}

	if input.WeightKg != 0 {
		if input.WeightKg < minWeightKg || input.WeightKg > maxWeightKg {
			return errors.New("weight must be between 20 and 300 kg")
		}
		p.CurrentWeightKg = input.WeightKg
	}

	if input.GoalWeightKg != 0 {
		if input.GoalWeightKg < minWeightKg || input.GoalWeightKg > maxWeightKg {
			return errors.New("goal weight must be between 20 and 300 kg")
		}
		p.GoalWeightKg = input.GoalWeightKg
	}

	if input.ActivityLevel != "" {
		switch input.ActivityLevel {
		case "sedentary", "light", "moderate", "active":
			p.ActivityLevel = input.ActivityLevel
		default:
			return errors.New("activity level must be sedentary, light, moderate or active")
		}
	}

	return s.db.WithContext(ctx).Save(p).Error
}
