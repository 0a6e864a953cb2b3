package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/goalboard-dev/goalboard/internal/handlers"
	"github.com/goalboard-dev/goalboard/internal/middleware"
	"github.com/goalboard-dev/goalboard/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.SignUp)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.GET("/profile", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
			auth.DELETE("/profile", middleware.AuthMiddleware(), handlers.Logout)
			auth.PUT("/update_password", middleware.AuthMiddleware(), handlers.UpdatePassword)
		}

		boards := api.Group("/boards", middleware.AuthMiddleware())
		{
			boards.POST("", handlers.CreateBoard)
			boards.GET("", handlers.ListBoards)
			boards.GET("/:board_id", handlers.GetBoard)
			boards.PATCH("/:board_id", handlers.UpdateBoard)
			boards.DELETE("/:board_id", handlers.DeleteBoard)
		}

		categories := api.Group("/categories", middleware.AuthMiddleware())
		{
			categories.POST("", handlers.CreateCategory)
			categories.GET("", handlers.ListCategories)
			categories.GET("/:category_id", handlers.GetCategory)
			categories.PATCH("/:category_id", handlers.UpdateCategory)
			categories.DELETE("/:category_id", handlers.DeleteCategory)
		}

		goals := api.Group("/goals", middleware.AuthMiddleware())
		{
			goals.POST("", handlers.CreateGoal)
			goals.GET("", handlers.ListGoals)
			goals.GET("/:goal_id", handlers.GetGoal)
			goals.PATCH("/:goal_id", handlers.UpdateGoal)
			goals.DELETE("/:goal_id", handlers.DeleteGoal)
		}

		comments := api.Group("/comments", middleware.AuthMiddleware())
		{
			comments.POST("", handlers.CreateComment)
			comments.GET("", handlers.ListComments)
			comments.GET("/:comment_id", handlers.GetComment)
			comments.PATCH("/:comment_id", handlers.UpdateComment)
			comments.DELETE("/:comment_id", handlers.DeleteComment)
		}
	}

	return r
}
