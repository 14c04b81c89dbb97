package controllers

import (
	"net/http"
	"strconv"

	"github.com/KristjanKelk/wellness-app-sub002/services"

	"github.com/gin-gonic/gin"
)

type WeightController struct {
	Svc *services.WeightService
}

func NewWeightController(svc *services.WeightService) *WeightController {
	return &WeightController{Svc: svc}
}

func (h *WeightController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	from, to, ok := parseRangeQuery(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	rows, err := h.Svc.List(c.Request.Context(), uid, from, to, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": rows})
}

func (h *WeightController) Add(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.WeightEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, milestones, err := h.Svc.Add(c.Request.Context(), uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"entry":          entry,
		"new_milestones": milestones,
	})
}

func (h *WeightController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), uid, uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
