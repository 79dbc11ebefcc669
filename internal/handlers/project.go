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

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	OwnerID     uint      `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Assignee    string    `json:"assignee"`
	CreatedAt   time.Time `json:"created_at"`
}

func projectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		OwnerID:     project.OwnerID,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		Assignee:    project.Assignee,
		CreatedAt:   project.CreatedAt,
	}
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Title is required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	project := models.Project{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      types.ProjectStatusTodo,
		Assignee:    req.Assignee,
	}

	if err := db.DB.WithContext(ctx.Request.Context()).Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"project": projectResponse(project),
	})
}

// ListProjects returns the projects the caller owns plus the ones they
// joined through an accepted collaboration request.
func ListProjects(ctx *gin.Context) {
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

	if err := tx.Where("owner_id = ?", userID).Or("id IN (?)", memberProjects).Order("id").Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": response,
	})
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var req UpdateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	if req.Status != "" && !types.ValidProjectStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid project status"})
		return
	}

	tx := db.DB.WithContext(ctx.Request.Context())

	var project models.Project
	projectID := ctx.Param("id")

	// Only the owner may mutate a project; members get read access only.
	if err := tx.Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve project"})
		}
		return
	}

	updates := make(map[string]interface{})

	if req.Title != "" {
		updates["title"] = req.Title
	}

	if req.Description != "" {
		updates["description"] = req.Description
	}

	if req.Status != "" {
		updates["status"] = req.Status
	}

	if req.Assignee != "" {
		updates["assignee"] = req.Assignee
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid fields to update"})
		return
	}

	if err := tx.Model(&project).Updates(updates).Error; err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update project"})
		return
	}

	// Refresh project data from database
	if err := tx.First(&project, project.ID).Error; err != nil {
		log.Printf("Failed to refresh project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": projectResponse(project),
	})
}

func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	tx := db.DB.WithContext(ctx.Request.Context())

	var project models.Project
	projectID := ctx.Param("id")

	if err := tx.Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve project"})
		}
		return
	}

	if err := tx.Delete(&project).Error; err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}
