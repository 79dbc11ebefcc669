package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	RevieweeID uint   `json:"reviewee_id" binding:"required"`
	ProjectID  *uint  `json:"project_id"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

type ReviewResponse struct {
	ID           uint      `json:"id"`
	ReviewerID   uint      `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name"`
	RevieweeID   uint      `json:"reviewee_id"`
	RevieweeName string    `json:"reviewee_name"`
	ProjectID    *uint     `json:"project_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

func CreateReview(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var req CreateReviewRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "reviewee_id and rating are required"})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Rating must be between 1 and 5"})
		return
	}

	tx := db.DB.WithContext(ctx.Request.Context())

	var reviewee models.User

	if err := tx.First(&reviewee, req.RevieweeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Reviewee not found"})
		} else {
			log.Printf("Failed to fetch reviewee: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		}
		return
	}

	review := models.Review{
		ReviewerID: userID,
		RevieweeID: req.RevieweeID,
		ProjectID:  req.ProjectID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := tx.Create(&review).Error; err != nil {
		log.Printf("Failed to create review: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to submit review"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"review_id": review.ID,
	})
}

func ListReceivedReviews(ctx *gin.Context) {
	listReviews(ctx, "reviewee_id")
}

func ListGivenReviews(ctx *gin.Context) {
	listReviews(ctx, "reviewer_id")
}

func listReviews(ctx *gin.Context, column string) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var reviews []models.Review

	err = db.DB.WithContext(ctx.Request.Context()).
		Preload("Reviewer").
		Preload("Reviewee").
		Where(column+" = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error

	if err != nil {
		log.Printf("Failed to list reviews: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve reviews"})
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))

	for _, review := range reviews {
		response = append(response, ReviewResponse{
			ID:           review.ID,
			ReviewerID:   review.ReviewerID,
			ReviewerName: review.Reviewer.FullName,
			RevieweeID:   review.RevieweeID,
			RevieweeName: review.Reviewee.FullName,
			ProjectID:    review.ProjectID,
			Rating:       review.Rating,
			Comment:      review.Comment,
			CreatedAt:    review.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": response,
	})
}
