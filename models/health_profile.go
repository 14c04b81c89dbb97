package models

import (
	"time"

	"gorm.io/gorm"
)

// HealthProfile holds the wellness data for one user (1:1). Weight and
// height live here rather than on User so account handling stays separate
// from health records.
type HealthProfile struct {
	gorm.Model
	UserID          uint `gorm:"uniqueIndex;not null"`
	Birthday        time.Time
	Gender          string  `gorm:"size:16"` // "male" | "female" | "other"
	HeightCm        float64
	CurrentWeightKg float64
	GoalWeightKg    float64
	ActivityLevel   string `gorm:"size:16;default:moderate"` // sedentary|light|moderate|active
}
