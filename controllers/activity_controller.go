package controllers

import (
	"net/http"
	"strconv"

	"github.com/KristjanKelk/wellness-app-sub002/services"
	"github.com/KristjanKelk/wellness-app-sub002/utils"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Svc *services.ActivityService
	Rek *services.RekognitionService
}

func NewActivityController(svc *services.ActivityService, rek *services.RekognitionService) *ActivityController {
	return &ActivityController{Svc: svc, Rek: rek}
}

func (h *ActivityController) List(c *gin.Context) {
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
	c.JSON(http.StatusOK, gin.H{"activities": rows})
}

func (h *ActivityController) Add(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	act, milestones, err := h.Svc.Add(c.Request.Context(), uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"activity":       act,
		"new_milestones": milestones,
	})
}

func (h *ActivityController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input services.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	act, err := h.Svc.Update(c.Request.Context(), uid, uint(id), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, act)
}

func (h *ActivityController) Delete(c *gin.Context) {
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

type PhotoSuggestRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
	Upload      bool   `json:"upload"` // also store the photo in S3
}

// PhotoSuggest labels a workout photo and suggests an activity type for
// the log form.
func (h *ActivityController) PhotoSuggest(c *gin.Context) {
	uid := c.GetUint("userID")

	if h.Rek == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo labelling not configured"})
		return
	}

	var req PhotoSuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	suggested, labels, err := h.Rek.SuggestActivity(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := gin.H{
		"suggested_type": suggested,
		"labels":         labels,
	}

	if req.Upload {
		url, err := utils.UploadBase64ImageToS3(req.ImageBase64, "activity-photos/"+strconv.FormatUint(uint64(uid), 10))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
			return
		}
		out["url"] = url
	}

	c.JSON(http.StatusOK, out)
}
