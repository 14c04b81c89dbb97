package controllers

import (
	"net/http"

	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	Svc *services.InsightService
}

func NewInsightController(svc *services.InsightService) *InsightController {
	return &InsightController{Svc: svc}
}

func (h *InsightController) Generate(c *gin.Context) {
	uid := c.GetUint("userID")

	insights, err := h.Svc.GetInsights(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// Payload exposes the anonymized aggregate without calling the model,
// mostly for the frontend's "what we share" view.
func (h *InsightController) Payload(c *gin.Context) {
	uid := c.GetUint("userID")

	payload, err := h.Svc.PreparePayload(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}
