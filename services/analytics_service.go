package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"

	"gorm.io/gorm"
)

type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

// ---------- Summary ----------

type WeightStats struct {
	Entries   int64   `json:"entries"`
	AvgKg     float64 `json:"avg_kg"`
	MinKg     float64 `json:"min_kg"`
	MaxKg     float64 `json:"max_kg"`
	NetChange float64 `json:"net_change_kg"` // last minus first in range
}

type ActivityStats struct {
	Sessions      int64              `json:"sessions"`
	TotalMinutes  float64            `json:"total_minutes"`
	TotalCalories float64            `json:"total_calories"`
	MinutesByType map[string]float64 `json:"minutes_by_type"`
}

type AnalyticsSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Weight   WeightStats   `json:"weight"`
	Activity ActivityStats `json:"activity"`

	Wellness struct {
		AvgTotal  float64 `json:"avg_total"`
		Snapshots int     `json:"snapshots"`
	} `json:"wellness"`

	Metadata struct {
		DaysLogged  int `json:"days_logged"`
		DaysInRange int `json:"days_in_range"`
	} `json:"metadata"`
}

func (s *AnalyticsService) Summary(
	ctx context.Context, profileID uint, from, to time.Time,
) (*AnalyticsSummary, error) {

	var weights []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND recorded_at BETWEEN ? AND ?", profileID, dayStart(from), dayEnd(to)).
		Order("recorded_at ASC").
		Find(&weights).Error; err != nil {
		return nil, err
	}

	var acts []models.Activity
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND performed_at BETWEEN ? AND ?", profileID, dayStart(from), dayEnd(to)).
		Find(&acts).Error; err != nil {
		return nil, err
	}

	var snaps []models.WellnessScore
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND date BETWEEN ? AND ?", profileID, dayStart(from), dayEnd(to)).
		Find(&snaps).Error; err != nil {
		return nil, err
	}

	out := &AnalyticsSummary{}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")

	logged := map[string]bool{}

	out.Weight.Entries = int64(len(weights))
	if len(weights) > 0 {
		min, max, sum := weights[0].WeightKg, weights[0].WeightKg, 0.0
		for _, w := range weights {
			sum += w.WeightKg
			if w.WeightKg < min {
				min = w.WeightKg
			}
			if w.WeightKg > max {
				max = w.WeightKg
			}
			logged[w.RecordedAt.Format("2006-01-02")] = true
		}
		out.Weight.AvgKg = round2(sum / float64(len(weights)))
		out.Weight.MinKg = min
		out.Weight.MaxKg = max
		out.Weight.NetChange = round2(weights[len(weights)-1].WeightKg - weights[0].WeightKg)
	}

	out.Activity.Sessions = int64(len(acts))
	out.Activity.MinutesByType = map[string]float64{}
	for _, a := range acts {
		out.Activity.TotalMinutes += a.DurationMin
		out.Activity.TotalCalories += a.Calories
		out.Activity.MinutesByType[a.Type] += a.DurationMin
		logged[a.PerformedAt.Format("2006-01-02")] = true
	}
	out.Activity.TotalMinutes = round2(out.Activity.TotalMinutes)
	out.Activity.TotalCalories = round2(out.Activity.TotalCalories)

	if len(snaps) > 0 {
		var sum float64
		for _, w := range snaps {
			sum += w.Total
		}
		out.Wellness.AvgTotal = round2(sum / float64(len(snaps)))
		out.Wellness.Snapshots = len(snaps)
	}

	out.Metadata.DaysLogged = len(logged)
	out.Metadata.DaysInRange = int(dayStart(to).Sub(dayStart(from)).Hours()/24) + 1

	return out, nil
}

// ---------- Weekly Overview ----------

type WeeklyOverviewResponse struct {
	WeekStart string `json:"week_start"`
	Mode      string `json:"mode"` // chart|detailed
	Days      any    `json:"days"`
}

type DayChart struct {
	Date            string   `json:"date"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	ActivityMinutes float64  `json:"activity_minutes"`
	WellnessTotal   *float64 `json:"wellness_total,omitempty"`
}

type Metric struct {
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

type DayDetailed struct {
	Date    string            `json:"date"`
	Metrics map[string]Metric `json:"metrics"`
}

func (s *AnalyticsService) WeeklyOverview(
	ctx context.Context, profileID uint, weekStart time.Time, mode string,
) (*WeeklyOverviewResponse, error) {

	if mode != "chart" && mode != "detailed" {
		return nil, errors.New("mode must be 'chart' or 'detailed'")
	}

	var profile models.HealthProfile
	if err := s.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		return nil, err
	}

	from := dayStart(weekStart)
	to := from.AddDate(0, 0, 6)

	var weights []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND recorded_at BETWEEN ? AND ?", profileID, from, dayEnd(to)).
		Order("recorded_at ASC").
		Find(&weights).Error; err != nil {
		return nil, err
	}
	// last entry of each day wins
	weightIdx := map[string]float64{}
	for _, w := range weights {
		weightIdx[w.RecordedAt.Format("2006-01-02")] = w.WeightKg
	}

	var acts []models.Activity
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND performed_at BETWEEN ? AND ?", profileID, from, dayEnd(to)).
		Find(&acts).Error; err != nil {
		return nil, err
	}
	minutesIdx := map[string]float64{}
	for _, a := range acts {
		minutesIdx[a.PerformedAt.Format("2006-01-02")] += a.DurationMin
	}

	var snaps []models.WellnessScore
	if err := s.db.WithContext(ctx).
		Where("profile_id = ? AND date BETWEEN ? AND ?", profileID, from, dayEnd(to)).
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	snapIdx := map[string]float64{}
	for _, w := range snaps {
		snapIdx[w.Date.Format("2006-01-02")] = w.Total
	}

	out := &WeeklyOverviewResponse{
		WeekStart: from.Format("2006-01-02"),
		Mode:      mode,
	}

	dailyTargetMin := weeklyTargetMin * levelFactor(profile.ActivityLevel) / 7

	if mode == "chart" {
		var days []DayChart
		for i := 0; i < 7; i++ {
			key := from.AddDate(0, 0, i).Format("2006-01-02")
			d := DayChart{Date: key, ActivityMinutes: minutesIdx[key]}
			if v, ok := weightIdx[key]; ok {
				w := v
				d.WeightKg = &w
			}
			if v, ok := snapIdx[key]; ok {
				t := v
				d.WellnessTotal = &t
			}
			days = append(days, d)
		}
		out.Days = days
		return out, nil
	}

	var days []DayDetailed
	for i := 0; i < 7; i++ {
		key := from.AddDate(0, 0, i).Format("2006-01-02")
		days = append(days, DayDetailed{
			Date: key,
			Metrics: map[string]Metric{
				"weight_kg": {
					Actual:  round2(weightIdx[key]),
					Target:  round2(profile.GoalWeightKg),
					Percent: pct(weightIdx[key], profile.GoalWeightKg),
				},
				"activity_minutes": {
					Actual:  round2(minutesIdx[key]),
					Target:  round2(dailyTargetMin),
					Percent: pct(minutesIdx[key], dailyTargetMin),
				},
				"wellness_total": {
					Actual:  round2(snapIdx[key]),
					Target:  100,
					Percent: round2(snapIdx[key]),
				},
			},
		})
	}
	out.Days = days
	return out, nil
}

// ---------- internals ----------

func pct(actual, goal float64) float64 {
	if goal <= 0 {
		if actual <= 0 {
			return 0
		}
		return 100
	}
	return round2((actual / goal) * 100.0)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
