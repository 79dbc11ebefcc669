package handlers

import (
	"log"
	"net/http"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
)

// GetAnalytics summarizes the status of every project visible to the
// caller (owned or joined).
func GetAnalytics(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	tx := db.DB.WithContext(ctx.Request.Context())

	memberProjects := tx.Model(&models.ProjectMembership{}).
		Select("project_id").
		Where("user_id = ?", userID)

	var projects []models.Project

	if err := tx.Where("owner_id = ?", userID).Or("id IN (?)", memberProjects).Find(&projects).Error; err != nil {
		log.Printf("Failed to load projects for analytics: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to compute analytics"})
		return
	}

	var todo, inProgress, completed int

	for _, project := range projects {
		switch project.Status {
		case types.ProjectStatusTodo:
			todo++
		case types.ProjectStatusInProgress:
			inProgress++
		case types.ProjectStatusCompleted:
			completed++
		}
	}

	total := len(projects)

	var completionRate float64
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":         true,
		"total":           total,
		"todo":            todo,
		"in_progress":     inProgress,
		"completed":       completed,
		"completion_rate": completionRate,
	})
}
