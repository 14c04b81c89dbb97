package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreparePayloadAnonymizes(t *testing.T) {
	db := newTestDB(t)
	user, profile := newTestUserAndProfile(t, db)

	user.FirstName = "Anna"
	user.LastName = "Tamm"
	require.NoError(t, db.Save(user).Error)

	profile.Birthday = time.Now().AddDate(-34, 0, 0)
	profile.Gender = "female"
	profile.GoalWeightKg = 70
	require.NoError(t, db.Save(profile).Error)

	require.NoError(t, db.Create(&models.WeightEntry{
		ProfileID: profile.ID, WeightKg: 83, RecordedAt: daysAgo(25),
	}).Error)
	require.NoError(t, db.Create(&models.WeightEntry{
		ProfileID: profile.ID, WeightKg: 80, RecordedAt: daysAgo(1),
	}).Error)
	require.NoError(t, db.Create(&models.Activity{
		ProfileID: profile.ID, Type: "running", DurationMin: 40, Calories: 350,
		PerformedAt: daysAgo(2),
	}).Error)
	require.NoError(t, db.Create(&models.Milestone{
		ProfileID: profile.ID, Type: models.MilestoneFirstWeight,
		Description: "Logged your first weight entry", AchievedAt: daysAgo(25),
	}).Error)

	svc := &InsightService{db: db}
	payload, err := svc.PreparePayload(context.Background(), user.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(payload.Ref, "subject-"))
	assert.Equal(t, "30-39", payload.AgeBracket)
	assert.Equal(t, "female", payload.Gender)
	assert.InDelta(t, -3.0, payload.WeightChange30dKg, 0.001)
	assert.InDelta(t, 10.0, payload.DistanceToGoalKg, 0.001)
	assert.InDelta(t, 40.0, payload.ActivityMinutes7d, 0.001)
	assert.InDelta(t, 350.0, payload.ActivityCalories7d, 0.001)
	assert.Contains(t, payload.RecentMilestones, "Logged your first weight entry")

	// nothing identifying may leak into the payload or the prompt
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	prompt := buildPrompt(payload)
	for _, leak := range []string{user.Email, "Anna", "Tamm"} {
		assert.NotContains(t, string(raw), leak)
		assert.NotContains(t, prompt, leak)
	}
}

func TestAgeBracket(t *testing.T) {
	assert.Equal(t, "", ageBracket(0))
	assert.Equal(t, "under 18", ageBracket(12))
	assert.Equal(t, "18-29", ageBracket(29))
	assert.Equal(t, "30-39", ageBracket(30))
	assert.Equal(t, "50-64", ageBracket(64))
	assert.Equal(t, "65+", ageBracket(80))
}

func TestGetInsightsParsesBullets(t *testing.T) {
	db := newTestDB(t)
	user, _ := newTestUserAndProfile(t, db)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "true", r.Header.Get("x-wait-for-model"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text":"- Drink more water\n• Take a short walk after lunch\n* Keep logging your weight"}]`))
	}))
	defer ts.Close()

	svc := &InsightService{
		db:      db,
		client:  ts.Client(),
		token:   "test-token",
		model:   "google/flan-t5-small",
		baseURL: ts.URL,
	}

	insights, err := svc.GetInsights(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Drink more water",
		"Take a short walk after lunch",
		"Keep logging your weight",
	}, insights)
}

func TestGetInsightsSurfacesAPIError(t *testing.T) {
	db := newTestDB(t)
	user, _ := newTestUserAndProfile(t, db)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
	}))
	defer ts.Close()

	svc := &InsightService{
		db:      db,
		client:  ts.Client(),
		token:   "test-token",
		model:   "google/flan-t5-small",
		baseURL: ts.URL,
	}

	_, err := svc.GetInsights(context.Background(), user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestGetInsightsRequiresToken(t *testing.T) {
	db := newTestDB(t)
	user, _ := newTestUserAndProfile(t, db)

	svc := &InsightService{db: db}
	_, err := svc.GetInsights(context.Background(), user.ID)
	assert.Error(t, err)
}
