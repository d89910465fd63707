package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/techblitz/techblitz-backend/internal/clients/redis"
	"github.com/techblitz/techblitz-backend/internal/db"
	"github.com/techblitz/techblitz-backend/internal/handlers"
	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/repos"
	"github.com/techblitz/techblitz-backend/internal/server"
	"github.com/techblitz/techblitz-backend/internal/services"
	"github.com/techblitz/techblitz-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	roadmapRepo := repos.NewRoadmapRepo(thePG, log)
	roadmapQuestionRepo := repos.NewRoadmapQuestionRepo(thePG, log)
	roadmapAnswerRepo := repos.NewRoadmapAnswerRepo(thePG, log)
	seedAnswerRepo := repos.NewDefaultRoadmapAnswerRepo(thePG, log)
	seedQuestionRepo := repos.NewDefaultRoadmapQuestionRepo(thePG, log)
	answerRepo := repos.NewAnswerRepo(thePG, log)
	aiLogRepo := repos.NewAICallLogRepo(thePG, log)

	// Redis cache is optional: the leaderboard falls back to the database
	// when REDIS_ADDR is unset or the connection fails.
	var cache redis.Cache
	if os.Getenv("REDIS_ADDR") != "" {
		cache, err = redis.NewCache(log)
		if err != nil {
			log.Warn("Redis cache init failed, continuing without cache", "error", err)
			cache = nil
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}
	generationService := services.NewRoadmapGenerationService(
		thePG,
		log,
		roadmapRepo,
		roadmapQuestionRepo,
		roadmapAnswerRepo,
		seedAnswerRepo,
		seedQuestionRepo,
		aiLogRepo,
		openaiClient,
	)
	questionService := services.NewRoadmapQuestionService(thePG, log, roadmapRepo, roadmapQuestionRepo)
	leaderboardService := services.NewLeaderboardService(thePG, log, answerRepo, cache)
	statisticsService := services.NewStatisticsService(thePG, log, answerRepo)
	userService := services.NewUserService(thePG, log, userRepo)

	// Handlers
	roadmapHandler := handlers.NewRoadmapHandler(log, generationService, questionService)
	leaderboardHandler := handlers.NewLeaderboardHandler(log, leaderboardService)
	statisticsHandler := handlers.NewStatisticsHandler(log, statisticsService)
	userHandler := handlers.NewUserHandler(log, userService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		RoadmapHandler:     roadmapHandler,
		LeaderboardHandler: leaderboardHandler,
		StatisticsHandler:  statisticsHandler,
		UserHandler:        userHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
