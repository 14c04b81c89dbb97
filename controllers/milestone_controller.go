package controllers

import (
	"net/http"

	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

type MilestoneController struct {
	Svc      *services.MilestoneService
	Profiles *services.ProfileService
}

func NewMilestoneController(svc *services.MilestoneService, ps *services.ProfileService) *MilestoneController {
	return &MilestoneController{Svc: svc, Profiles: ps}
}

func (h *MilestoneController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	profile, err := h.Profiles.ProfileForUser(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.Svc.List(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": rows})
}
