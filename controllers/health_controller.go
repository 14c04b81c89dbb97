package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// HealthCheck is the endpoint the wake-up utility pings. Kept cheap: no
// DB round-trip, a sleeping container only needs to prove it booted.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"uptime_s":  int(time.Since(startedAt).Seconds()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
