package models

import (
	"time"

	"gorm.io/gorm"
)

// Milestone rows are append-only achievement records. Value disambiguates
// repeatable types: the goal weight for goal milestones, total kilos lost
// for weight-loss steps, streak length for streaks.
type Milestone struct {
	gorm.Model
	ProfileID   uint   `gorm:"index;not null"`
	Type        string `gorm:"size:32;not null"`
	Description string `gorm:"type:text"`
	Value       float64
	AchievedAt  time.Time `gorm:"index"`
}

const (
	MilestoneGoalReached     = "goal_reached"
	MilestoneGoalWithinReach = "goal_within_reach"
	MilestoneWeightLost      = "weight_lost_5kg"
	MilestoneFirstWeight     = "first_weight"
	MilestoneFirstActivity   = "first_activity"
	MilestoneActivityStreak  = "activity_streak_7"
)
