package controllers

import (
	"net/http"
	"strconv"

	"github.com/KristjanKelk/wellness-app-sub002/config"
	"github.com/KristjanKelk/wellness-app-sub002/models"
	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

func ListAlerts(c *gin.Context) {
	uid := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	alerts, err := services.ListAlerts(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// ToggleNotifications flips push delivery for all of the user's devices.
func ToggleNotifications(c *gin.Context) {
	uid := c.GetUint("userID")

	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := config.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", uid).
		Update("enabled", req.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
