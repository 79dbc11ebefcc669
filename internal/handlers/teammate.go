package handlers

import (
	"log"
	"net/http"

	"github.com/collabsphere/collabsphere/db"
	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/search"
	"github.com/collabsphere/collabsphere/internal/utils"
	"github.com/gin-gonic/gin"
)

type SearchTeammatesRequest struct {
	Query       string   `json:"query"`
	Skills      []string `json:"skills"`
	Years       []string `json:"years"`
	Departments []string `json:"departments"`
}

// TeammateResult is the public directory projection. It deliberately
// omits linkedin_url and profile_pic.
type TeammateResult struct {
	ID          uint     `json:"id"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Institution string   `json:"institution"`
	Department  string   `json:"department"`
	Year        string   `json:"year"`
	Skills      []string `json:"skills"`
}

// SearchTeammates filters the user directory. Categories combine by AND,
// values within a category by OR; an empty request matches everyone.
func SearchTeammates(ctx *gin.Context) {
	var req SearchTeammatesRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid search filters"})
		return
	}

	filter := search.Filter{
		Query:       req.Query,
		Skills:      req.Skills,
		Years:       req.Years,
		Departments: req.Departments,
	}

	var users []models.User

	query := filter.Apply(db.DB.WithContext(ctx.Request.Context()).Model(&models.User{}))

	if err := query.Order("id").Find(&users).Error; err != nil {
		log.Printf("Teammate search failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Search failed"})
		return
	}

	results := make([]TeammateResult, 0, len(users))

	for _, user := range users {
		results = append(results, TeammateResult{
			ID:          user.ID,
			FullName:    user.FullName,
			Email:       user.Email,
			Institution: user.Institution,
			Department:  user.Department,
			Year:        user.Year,
			Skills:      utils.SplitSkills(user.Skills),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(results),
		"results": results,
	})
}
