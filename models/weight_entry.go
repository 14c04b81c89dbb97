package models

import (
	"time"

	"gorm.io/gorm"
)

type WeightEntry struct {
	gorm.Model
	ProfileID  uint      `gorm:"index;not null"`
	WeightKg   float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"index;not null"`
	Notes      string    `gorm:"type:text"`
}
