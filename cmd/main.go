package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/eduquest/eduquest/config"
	"github.com/eduquest/eduquest/database"
	"github.com/eduquest/eduquest/internal/controller"
	"github.com/eduquest/eduquest/internal/logger"
	"github.com/eduquest/eduquest/internal/model"
	"github.com/eduquest/eduquest/internal/repository"
	"github.com/eduquest/eduquest/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title EduQuest Quiz API
// @version 1.0
// @description Quiz catalog, timed attempt flow, scoring and leaderboards.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			NewRand,              // Seedable shuffle source for question orders
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewCategoryRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewQuestionAttemptRepository,
		),

		// Services layer
		fx.Provide(
			service.NewQuizService,
			service.NewAttemptService,
			service.NewAnswerService,
			service.NewScoringService,
			service.NewLeaderboardService,
		),

		// API controllers layer
		fx.Provide(
			controller.NewQuizController,
			controller.NewAttemptController,
			controller.NewLeaderboardController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewRand builds the shuffle source used for randomized question orders. Injected so
// tests can substitute a fixed seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through zerolog instead of gin's default logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *controller.QuizController,
	attemptCtrl *controller.AttemptController,
	leaderboardCtrl *controller.LeaderboardController,
) {
	api := router.Group("/api/v1")
	{
		// Catalog (read-only)
		api.GET("/categories", quizCtrl.GetCategories)
		api.GET("/quizzes", quizCtrl.GetQuizzes)
		api.GET("/quizzes/:quiz_id", quizCtrl.GetQuizDetails)
		api.GET("/quizzes/slug/:slug", quizCtrl.GetQuizDetailsBySlug)

		// Attempt flow
		api.POST("/quizzes/:quiz_id/attempts", attemptCtrl.StartAttempt)
		api.GET("/quizzes/:quiz_id/attempts/question", attemptCtrl.GetQuestion)
		api.POST("/attempts/:attempt_id/answers", attemptCtrl.SubmitAnswer)
		api.POST("/attempts/:attempt_id/finish", attemptCtrl.FinishAttempt)
		api.GET("/quizzes/:quiz_id/results", attemptCtrl.GetResults)

		// Leaderboard
		api.GET("/quizzes/:quiz_id/leaderboard", leaderboardCtrl.GetLeaderboard)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("EduQuest API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Category{},
		&model.Quiz{},
		&model.Question{},
		&model.Choice{},
		&model.QuizAttempt{},
		&model.QuestionAttempt{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
