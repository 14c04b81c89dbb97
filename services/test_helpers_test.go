package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.HealthProfile{},
		&models.Activity{},
		&models.WeightEntry{},
		&models.Milestone{},
		&models.WellnessScore{},
		&models.Alert{},
		&models.UserDevice{},
	))
	return db
}

func newTestUserAndProfile(t *testing.T, db *gorm.DB) (*models.User, *models.HealthProfile) {
	t.Helper()

	user := &models.User{
		Email:    fmt.Sprintf("test%d@example.com", testDBSeq.Load()),
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.HealthProfile{
		UserID:          user.ID,
		HeightCm:        180,
		CurrentWeightKg: 80,
		ActivityLevel:   "moderate",
	}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

func daysAgo(n int) time.Time {
	return time.Now().AddDate(0, 0, -n)
}
