package services

import (
	"fmt"
	"time"

	"github.com/KristjanKelk/wellness-app-sub002/models"
	"github.com/KristjanKelk/wellness-app-sub002/utils"

	"gorm.io/gorm"
)

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{db: db, rt: rt, ps: ps}
}

func EmitAlert(userID uint, typ, message string) { // safe to call anywhere
	if _alert.db == nil {
		return // not initialized
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "New achievement", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}

	// milestones are worth an email too; best-effort
	if typ == "milestone" {
		var user models.User
		if err := _alert.db.First(&user, userID).Error; err == nil {
			_ = utils.SendMilestoneEmail(user.Email, message)
		}
	}
}

func ListAlerts(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	var alerts []models.Alert
	err := _alert.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
