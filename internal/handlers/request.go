package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SendRequestRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	ProjectID   *uint  `json:"project_id"`
	Message     string `json:"message" binding:"required"`
}

type RequestResponse struct {
	ID           uint      `json:"id"`
	SenderID     uint      `json:"sender_id"`
	SenderName   string    `json:"sender_name"`
	RecipientID  uint      `json:"recipient_id"`
	ProjectID    *uint     `json:"project_id"`
	ProjectTitle string    `json:"project_title"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// SendRequest creates a collaboration request and the recipient's
// incoming_request notification in one transaction. The notification
// snapshots the sender name and project title as they are now.
func SendRequest(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var req SendRequestRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "recipient_id and message are required"})
		return
	}

	if req.RecipientID == currentUser.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot send a request to yourself"})
		return
	}

	tx := db.DB.WithContext(ctx.Request.Context())

	var recipient models.User

	if err := tx.First(&recipient, req.RecipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Recipient not found"})
		} else {
			log.Printf("Failed to fetch recipient: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	var projectTitle string

	if req.ProjectID != nil {
		var project models.Project

		if err := tx.First(&project, *req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
			} else {
				log.Printf("Failed to fetch project: %v", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
			}
			return
		}

		projectTitle = project.Title
	}

	request := models.CollaborationRequest{
		SenderID:    currentUser.ID,
		RecipientID: req.RecipientID,
		ProjectID:   req.ProjectID,
		Message:     req.Message,
		Status:      models.RequestStatusPending,
	}

	notification := models.Notification{
		UserID:       req.RecipientID,
		Type:         types.NotificationTypeIncomingRequest,
		Message:      req.Message,
		SenderName:   currentUser.FullName,
		ProjectTitle: projectTitle,
	}

	err = tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return tx.Create(&notification).Error
	})

	if err != nil {
		log.Printf("Failed to create collaboration request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to send request"})
		return
	}

	BroadcastNotification(req.RecipientID, NotificationResponse{
		ID:        notification.ID,
		Type:      notification.Type,
		Message:   notification.Message,
		Sender:    notification.SenderName,
		Project:   notification.ProjectTitle,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	})

	ctx.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"request_id": request.ID,
	})
}

// ListReceivedRequests returns the caller's pending inbox. Accepted and
// rejected requests drop out of this view.
func ListReceivedRequests(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var requests []models.CollaborationRequest

	err = db.DB.WithContext(ctx.Request.Context()).
		Preload("Sender").
		Preload("Project").
		Where("recipient_id = ? AND status = ?", userID, models.RequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error

	if err != nil {
		log.Printf("Failed to list received requests: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve requests"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requestResponses(requests),
	})
}

func ListSentRequests(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var requests []models.CollaborationRequest

	err = db.DB.WithContext(ctx.Request.Context()).
		Preload("Sender").
		Preload("Project").
		Where("sender_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error

	if err != nil {
		log.Printf("Failed to list sent requests: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve requests"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requestResponses(requests),
	})
}

// AcceptRequest flips a pending request to accepted and enrolls the
// recipient as a project member, atomically. A request that was already
// accepted or rejected is not found by the pending-only lookup, so a
// second accept returns 404 and cannot duplicate the membership.
func AcceptRequest(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	requestID := ctx.Param("id")

	err = db.DB.WithContext(ctx.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var request models.CollaborationRequest

		if err := tx.Where("id = ? AND recipient_id = ? AND status = ?", requestID, userID, models.RequestStatusPending).First(&request).Error; err != nil {
			return err
		}

		if request.ProjectID != nil {
			membership := models.ProjectMembership{
				UserID:    userID,
				ProjectID: *request.ProjectID,
				Role:      "member",
			}

			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}

		return tx.Model(&request).Update("status", models.RequestStatusAccepted).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Request not found"})
			return
		}
		log.Printf("Failed to accept request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to accept request"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request accepted",
	})
}

func RejectRequest(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	requestID := ctx.Param("id")

	result := db.DB.WithContext(ctx.Request.Context()).
		Model(&models.CollaborationRequest{}).
		Where("id = ? AND recipient_id = ? AND status = ?", requestID, userID, models.RequestStatusPending).
		Update("status", models.RequestStatusRejected)

	if result.Error != nil {
		log.Printf("Failed to reject request: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to reject request"})
		return
	}

	if result.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Request not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Request rejected",
	})
}

func requestResponses(requests []models.CollaborationRequest) []RequestResponse {
	response := make([]RequestResponse, 0, len(requests))

	for _, request := range requests {
		item := RequestResponse{
			ID:          request.ID,
			SenderID:    request.SenderID,
			SenderName:  request.Sender.FullName,
			RecipientID: request.RecipientID,
			ProjectID:   request.ProjectID,
			Message:     request.Message,
			Status:      request.Status,
			CreatedAt:   request.CreatedAt,
		}

		if request.Project != nil {
			item.ProjectTitle = request.Project.Title
		}

		response = append(response, item)
	}

	return response
}
