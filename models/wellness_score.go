package models

import (
	"time"

	"gorm.io/gorm"
)

// WellnessScore is a daily snapshot, upserted by (profile_id, date).
type WellnessScore struct {
	gorm.Model
	ProfileID     uint      `gorm:"index;not null"`
	Date          time.Time `gorm:"index;not null"`
	BMIScore      float64
	ActivityScore float64
	ProgressScore float64
	HabitScore    float64
	Total         float64
}
