package controllers

import (
	"net/http"

	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Svc *services.ProfileService
}

func NewProfileController(svc *services.ProfileService) *ProfileController {
	return &ProfileController{Svc: svc}
}

func (h *ProfileController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	profile, err := h.Svc.Get(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.HealthProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Svc.Update(c.Request.Context(), uid, input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}
