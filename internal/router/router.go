package router

import (
	"net/http"
	"time"

	"github.com/collabsphere/collabsphere/internal/handlers"
	"github.com/collabsphere/collabsphere/internal/middleware"
	"github.com/collabsphere/collabsphere/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Not found"})
	})
	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "error": "Method not allowed"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/notifications", middleware.AuthMiddleware(), handlers.NotificationSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/profile", middleware.AuthMiddleware(), handlers.GetProfile)
			auth.PUT("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.PUT("/:id", handlers.UpdateProject)
			projects.DELETE("/:id", handlers.DeleteProject)
		}

		api.GET("/analytics", middleware.AuthMiddleware(), handlers.GetAnalytics)

		// Public directory, no auth gate on purpose (matches the
		// original product behavior).
		api.POST("/teammates/search", handlers.SearchTeammates)

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.DELETE("/clear", handlers.ClearNotifications)
			notifications.PUT("/:id/read", handlers.MarkNotificationRead)
			notifications.DELETE("/:id", handlers.DeleteNotification)
		}

		requests := api.Group("/requests", middleware.AuthMiddleware())
		{
			requests.POST("/send", handlers.SendRequest)
			requests.GET("/received", handlers.ListReceivedRequests)
			requests.GET("/sent", handlers.ListSentRequests)
			requests.PUT("/:id/accept", handlers.AcceptRequest)
			requests.PUT("/:id/reject", handlers.RejectRequest)
		}

		reviews := api.Group("/reviews", middleware.AuthMiddleware())
		{
			reviews.POST("", handlers.CreateReview)
			reviews.GET("/received", handlers.ListReceivedReviews)
			reviews.GET("/given", handlers.ListGivenReviews)
		}
	}

	return r
}
