package controllers

import (
	"net/http"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc      *services.AnalyticsService
	Profiles *services.ProfileService
}

func NewAnalyticsController(svc *services.AnalyticsService, ps *services.ProfileService) *AnalyticsController {
	return &AnalyticsController{Svc: svc, Profiles: ps}
}

func (h *AnalyticsController) GetSummary(c *gin.Context) {
	uid := c.GetUint("userID")

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	fromStr := c.DefaultQuery("from", first.Format("2006-01-02"))
	toStr := c.DefaultQuery("to", last.Format("2006-01-02"))

	from, err := time.ParseInLocation("2006-01-02", fromStr, now.Location())
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, now.Location())
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid to date"})
		return
	}
	if to.Before(from) {
		c.JSON(400, gin.H{"error": "`to` must be on/after `from`"})
		return
	}

	profile, err := h.Profiles.ProfileForUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.Summary(c.Request.Context(), profile.ID, from, to)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, out)
}

func (h *AnalyticsController) GetWeeklyOverview(c *gin.Context) {
	uid := c.GetUint("userID")

	now := time.Now()
	weekStart := startOfWeek(now)
	if v := c.Query("week_start"); v != "" {
		if ws, err := time.ParseInLocation("2006-01-02", v, now.Location()); err == nil {
			weekStart = startOfWeek(ws)
		} else {
			c.JSON(400, gin.H{"error": "invalid week_start"})
			return
		}
	}
	mode := c.DefaultQuery("mode", "detailed")

	profile, err := h.Profiles.ProfileForUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	out, err := h.Svc.WeeklyOverview(c.Request.Context(), profile.ID, weekStart, mode)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, out)
}

// --- helpers ---

// parseRangeQuery reads optional from/to date query params; writes a 400
// and returns ok=false on malformed input.
func parseRangeQuery(c *gin.Context) (from, to time.Time, ok bool) {
	loc := time.Now().Location()
	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return from, to, false
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return from, to, false
		}
		to = t
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "`to` must be on/after `from`"})
		return from, to, false
	}
	return from, to, true
}

func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	tt := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return tt.AddDate(0, 0, -(wd - 1)) // Monday
}
