package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/auth"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FullName    string   `json:"fullName" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	Institution string   `json:"institution" binding:"required"`
	Department  string   `json:"department" binding:"required"`
	Year        string   `json:"year" binding:"required"`
	Skills      []string `json:"skills" binding:"required,min=1"`
	LinkedinURL string   `json:"linkedinUrl"`
	ProfilePic  string   `json:"profilePic"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName    string   `json:"fullName"`
	Institution string   `json:"institution"`
	Department  string   `json:"department"`
	Year        string   `json:"year"`
	Skills      []string `json:"skills"`
	LinkedinURL string   `json:"linkedinUrl"`
	ProfilePic  string   `json:"profilePic"`
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Institution: user.Institution,
		Department:  user.Department,
		Year:        user.Year,
		Skills:      utils.SplitSkills(user.Skills),
		LinkedinURL: user.LinkedinURL,
		ProfilePic:  user.ProfilePic,
	}
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing or invalid registration fields"})
		return
	}

	skills := utils.JoinSkills(req.Skills)

	if skills == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "At least one skill is required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	tx := db.DB.WithContext(ctx.Request.Context())

	var existingUser models.User

	err := tx.Where("email = ?", req.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	newUser := models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Institution:  req.Institution,
		Department:   req.Department,
		Year:         req.Year,
		Skills:       skills,
		LinkedinURL:  req.LinkedinURL,
		ProfilePic:   req.ProfilePic,
	}

	if err := tx.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    userResponse(newUser),
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.WithContext(ctx.Request.Context()).Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password, no account enumeration.
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    userResponse(user),
	})
}

func GetProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.WithContext(ctx.Request.Context()).First(&user, currentUser.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userResponse(user),
	})
}

func UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	var req UpdateProfileRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.FullName != "" {
		updates["full_name"] = strings.TrimSpace(req.FullName)
	}

	if req.Institution != "" {
		updates["institution"] = req.Institution
	}

	if req.Department != "" {
		updates["department"] = req.Department
	}

	if req.Year != "" {
		updates["year"] = req.Year
	}

	if len(req.Skills) > 0 {
		skills := utils.JoinSkills(req.Skills)
		if skills == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "At least one skill is required"})
			return
		}
		updates["skills"] = skills
	}

	if req.LinkedinURL != "" {
		updates["linkedin_url"] = req.LinkedinURL
	}

	if req.ProfilePic != "" {
		updates["profile_pic"] = req.ProfilePic
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid fields to update"})
		return
	}

	if err := db.DB.WithContext(ctx.Request.Context()).Model(&models.User{}).Where("id = ?", currentUser.ID).Updates(updates).Error; err != nil {
		log.Printf("Failed to update profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
	})
}
