package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/techblitz/techblitz-backend/internal/handlers"
)

type RouterConfig struct {
	RoadmapHandler     *handlers.RoadmapHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	StatisticsHandler  *handlers.StatisticsHandler
	UserHandler        *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Roadmaps
		api.POST("/roadmaps/:roadmapId/generate", cfg.RoadmapHandler.Generate)
		api.POST("/roadmaps/:roadmapId/questions/:questionId/answer", cfg.RoadmapHandler.SubmitAnswer)
		// Leaderboard
		api.GET("/questions/:questionId/fastest", cfg.LeaderboardHandler.GetFastestTimes)
		// Statistics
		api.GET("/statistics", cfg.StatisticsHandler.GetStatistics)
		// Users
		api.GET("/users/:userId/streak", cfg.UserHandler.GetDailyStreak)
	}

	return router
}
