package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
)

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	Project   string    `json:"project"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ListNotifications returns the caller's 50 most recent notifications,
// newest first.
func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var notifications []models.Notification

	err = db.DB.WithContext(ctx.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error

	if err != nil {
		log.Printf("Failed to list notifications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve notifications"})
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))

	for _, notification := range notifications {
		response = append(response, NotificationResponse{
			ID:        notification.ID,
			Type:      notification.Type,
			Message:   notification.Message,
			Sender:    notification.SenderName,
			Project:   notification.ProjectTitle,
			IsRead:    notification.IsRead,
			CreatedAt: notification.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": response,
	})
}

func MarkNotificationRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	notificationID := ctx.Param("id")

	// Scoping by user_id keeps callers away from other users' rows even
	// when they guess a valid id.
	result := db.DB.WithContext(ctx.Request.Context()).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)

	if result.Error != nil {
		log.Printf("Failed to mark notification read: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update notification"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

func DeleteNotification(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	notificationID := ctx.Param("id")

	result := db.DB.WithContext(ctx.Request.Context()).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})

	if result.Error != nil {
		log.Printf("Failed to delete notification: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete notification"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification deleted",
	})
}

func ClearNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	err = db.DB.WithContext(ctx.Request.Context()).
		Where("user_id = ?", userID).
		Delete(&models.Notification{}).Error

	if err != nil {
		log.Printf("Failed to clear notifications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear notifications"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications cleared",
	})
}
