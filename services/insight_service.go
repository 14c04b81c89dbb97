package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"
	"github.com/KristjanKelk/wellness-app-sub002/utils"

	"gorm.io/gorm"
)

// InsightPayload is the anonymized aggregate sent to the language model.
// It must never carry names, emails or database IDs.
type InsightPayload struct {
	Ref                string   `json:"ref"`
	AgeBracket         string   `json:"age_bracket,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	BMI                float64  `json:"bmi,omitempty"`
	BMICategory        string   `json:"bmi_category,omitempty"`
	WeightChange30dKg  float64  `json:"weight_change_30d_kg"`
	DistanceToGoalKg   float64  `json:"distance_to_goal_kg,omitempty"`
	ActivityMinutes7d  float64  `json:"activity_minutes_7d"`
	ActivityCalories7d float64  `json:"activity_calories_7d"`
	WellnessTotal      float64  `json:"wellness_total,omitempty"`
	RecentMilestones   []string `json:"recent_milestones,omitempty"`
}

type InsightService struct {
	db      *gorm.DB
	client  *http.Client
	token   string
	model   string
	baseURL string
}

func NewInsightService(db *gorm.DB) *InsightService {
	return &InsightService{
		db:      db,
		client:  &http.Client{Timeout: 15 * time.Second},
		token:   os.Getenv("HUGGINGFACE_TOKEN"),
		model:   "google/flan-t5-small",
		baseURL: "https://api-inference.huggingface.co",
	}
}

// PreparePayload aggregates the profile's records into an anonymized
// snapshot suitable for an external model.
func (s *InsightService) PreparePayload(ctx context.Context, userID uint) (*InsightPayload, error) {
	profile, err := profileForUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	payload := &InsightPayload{
		Ref:    utils.AnonymousRef(),
		Gender: profile.Gender,
	}

	if !profile.Birthday.IsZero() {
		payload.AgeBracket = ageBracket(utils.CalculateAge(profile.Birthday))
	}
	if bmi, err := utils.CalculateBMI(profile.HeightCm, profile.CurrentWeightKg); err == nil {
		payload.BMI = round2(bmi)
		payload.BMICategory = utils.BMICategory(bmi)
	}
	if profile.GoalWeightKg > 0 && profile.CurrentWeightKg > 0 {
		payload.DistanceToGoalKg = round2(profile.CurrentWeightKg - profile.GoalWeightKg)
	}

	now := time.Now()

	var weights []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND recorded_at >= ?", profile.ID, now.AddDate(0, 0, -30)).
		Order("recorded_at ASC").
		Find(&weights).Error; err != nil {
		return nil, err
	}
	if len(weights) >= 2 {
		payload.WeightChange30dKg = round2(weights[len(weights)-1].WeightKg - weights[0].WeightKg)
	}

	var acts []models.Activity
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND performed_at >= ?", profile.ID, now.AddDate(0, 0, -7)).
		Find(&acts).Error; err != nil {
		return nil, err
	}
	for _, a := range acts {
		payload.ActivityMinutes7d += a.DurationMin
		payload.ActivityCalories7d += a.Calories
	}

	var snap models.WellnessScore
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("date DESC").
		First(&snap).Error; err == nil {
		payload.WellnessTotal = snap.Total
	}

	var milestones []models.Milestone
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("achieved_at DESC").
		Limit(3).
		Find(&milestones).Error; err != nil {
		return nil, err
	}
	for _, m := range milestones {
		payload.RecentMilestones = append(payload.RecentMilestones, m.Description)
	}

	return payload, nil
}

func ageBracket(age int) string {
	switch {
	case age <= 0:
		return ""
	case age < 18:
		return "under 18"
	case age < 30:
		return "18-29"
	case age < 40:
		return "30-39"
	case age < 50:
		return "40-49"
	case age < 65:
		return "50-64"
	default:
		return "65+"
	}
}

func buildPrompt(p *InsightPayload) string {
	var sb bytes.Buffer
	sb.WriteString("Wellness summary for an anonymous subject:\n")
	if p.AgeBracket != "" {
		sb.WriteString(fmt.Sprintf("- age bracket: %s\n", p.AgeBracket))
	}
	if p.Gender != "" {
		sb.WriteString(fmt.Sprintf("- gender: %s\n", p.Gender))
	}
	if p.BMI > 0 {
		sb.WriteString(fmt.Sprintf("- BMI: %.1f (%s)\n", p.BMI, p.BMICategory))
	}
	sb.WriteString(fmt.Sprintf("- weight change over 30 days: %+.1f kg\n", p.WeightChange30dKg))
	if p.DistanceToGoalKg != 0 {
		sb.WriteString(fmt.Sprintf("- distance to goal weight: %+.1f kg\n", p.DistanceToGoalKg))
	}
	sb.WriteString(fmt.Sprintf("- activity last 7 days: %.0f minutes, %.0f kcal burned\n",
		p.ActivityMinutes7d, p.ActivityCalories7d))
	if p.WellnessTotal > 0 {
		sb.WriteString(fmt.Sprintf("- wellness score: %.0f/100\n", p.WellnessTotal))
	}
	for _, m := range p.RecentMilestones {
		sb.WriteString(fmt.Sprintf("- recent milestone: %s\n", m))
	}
	sb.WriteString("\nSuggest 3-5 practical, encouraging adjustments to improve this person's wellness. Return plain bullet points.")
	return sb.String()
}

// GetInsights prepares the anonymized payload and asks the model for
// suggestions.
func (s *InsightService) GetInsights(ctx context.Context, userID uint) ([]string, error) {
	if s.token == "" {
		return nil, fmt.Errorf("HUGGINGFACE_TOKEN not set")
	}

	payload, err := s.PreparePayload(ctx, userID)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"inputs": buildPrompt(payload),
		"parameters": map[string]any{
			"max_new_tokens": 128,
			"temperature":    0.2,
		},
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		fmt.Sprintf("%s/models/%s", s.baseURL, s.model),
		bytes.NewReader(b),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	// Ensure HF loads cold models instead of returning a "loading" error
	req.Header.Set("x-wait-for-model", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hf request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read hf response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var hfErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBytes, &hfErr) == nil && hfErr.Error != "" {
			return nil, fmt.Errorf("hf api error (%d): %s", resp.StatusCode, hfErr.Error)
		}
		return nil, fmt.Errorf("hf api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	// Expected text2text format: [{"generated_text":"..."}]
	var hfOut []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(respBytes, &hfOut); err != nil {
		bodyPreview := string(respBytes)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		return nil, fmt.Errorf("decode hf response error: %v | body: %s", err, bodyPreview)
	}
	if len(hfOut) == 0 || strings.TrimSpace(hfOut[0].GeneratedText) == "" {
		return nil, fmt.Errorf("empty insights from hf")
	}

	var insights []string
	for _, line := range strings.Split(hfOut[0].GeneratedText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimLeft(line, "-•* \t")
		if line != "" {
			insights = append(insights, line)
		}
	}
	return insights, nil
}
