package models

import (
	"time"

	"gorm.io/gorm"
)

type Activity struct {
	gorm.Model
	ProfileID   uint      `gorm:"index;not null"`
	Type        string    `gorm:"size:64;not null"` // e.g. "running", "cycling"
	DurationMin float64
	Intensity   string    `gorm:"size:16;default:moderate"` // "low" | "moderate" | "high"
	Calories    float64
	PerformedAt time.Time `gorm:"index;not null"`
	Notes       string    `gorm:"type:text"`
}
