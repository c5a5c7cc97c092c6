package handlers

import (
	"net/http"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs shows the most recent admin and owner mutations.
func ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	err := database.DB.Preload("User").
		Order("created_at DESC").
		Limit(200).
		Find(&logs).Error
	if err != nil {
		logger.Error("list audit logs:", err)
	}

	render(c, http.StatusOK, "audit.html", gin.H{
		"Logs": logs,
	})
}
