package database

import "github.com/bockpetr/kost/internal/models"

// CreateAuditLog records an admin or owner mutation. Best effort: an audit
// failure never fails the request that caused it.
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = DB.Create(&record).Error
}
