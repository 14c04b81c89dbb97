package controllers

import (
	"net/http"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

type WellnessController struct {
	Svc      *services.WellnessService
	Profiles *services.ProfileService
}

func NewWellnessController(svc *services.WellnessService, ps *services.ProfileService) *WellnessController {
	return &WellnessController{Svc: svc, Profiles: ps}
}

// GetScore computes (and snapshots) today's wellness score.
func (h *WellnessController) GetScore(c *gin.Context) {
	uid := c.GetUint("userID")

	profile, err := h.Profiles.ProfileForUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	score, err := h.Svc.ComputeScore(c.Request.Context(), profile.ID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *WellnessController) GetHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}
	now := time.Now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = now.AddDate(0, -1, 0)
	}

	profile, err := h.Profiles.ProfileForUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.Svc.History(c.Request.Context(), profile.ID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": rows})
}
