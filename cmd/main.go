package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vdtri/toeicmate/config"
	"github.com/vdtri/toeicmate/database"
	_ "github.com/vdtri/toeicmate/docs" // Swagger docs
	"github.com/vdtri/toeicmate/internal/controller"
	"github.com/vdtri/toeicmate/internal/gateway"
	"github.com/vdtri/toeicmate/internal/logger"
	"github.com/vdtri/toeicmate/internal/repository"
	"github.com/vdtri/toeicmate/internal/service"
	"github.com/vdtri/toeicmate/internal/session"
	"github.com/vdtri/toeicmate/internal/store"
)

// @title TOEIC Mate API
// @version 1.0
// @description Local-first TOEIC practice API with AI-generated content, grading and live-query notifications.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	logger.Init()

	app := fx.New(
		// Core components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			store.NewBus,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewAttemptRepository,
			repository.NewQuestionRepository,
			repository.NewVocabularyRepository,
			repository.NewSettingRepository,
		),

		// Session and AI gateway
		fx.Provide(
			session.NewStore,
			gateway.NewGeminiGateway,
		),

		// Services
		fx.Provide(
			service.NewClock,
			service.NewScoreConverterService,
			service.NewUserService,
			service.NewQuestionService,
			service.NewReadingBuilderService,
			service.NewSubmissionService,
			service.NewTranslationService,
			service.NewVocabularyService,
			service.NewHistoryService,
			service.NewProgressService,
		),

		// Controllers
		fx.Provide(
			controller.NewSessionController,
			controller.NewWritingController,
			controller.NewReadingController,
			controller.NewHistoryController,
			controller.NewVocabularyController,
			controller.NewEventsController,
		),

		fx.Invoke(MigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// The view layer is a local browser app; keep CORS open.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server and
// session lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sess *session.Store,
	sessionCtrl *controller.SessionController,
	writingCtrl *controller.WritingController,
	readingCtrl *controller.ReadingController,
	historyCtrl *controller.HistoryController,
	vocabularyCtrl *controller.VocabularyController,
	eventsCtrl *controller.EventsController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", sessionCtrl.Login)
		api.POST("/auth/logout", sessionCtrl.Logout)
		api.GET("/session", sessionCtrl.GetSession)
		api.PUT("/settings", sessionCtrl.UpdateSettings)

		api.POST("/writing/generate", writingCtrl.Generate)
		api.POST("/writing/submit", writingCtrl.Submit)
		api.GET("/questions", writingCtrl.ListQuestions)
		api.POST("/questions", writingCtrl.SaveQuestion)
		api.DELETE("/questions/:id", writingCtrl.DeleteQuestion)
		api.POST("/questions/import", writingCtrl.ImportQuestions)

		api.POST("/reading/generate", readingCtrl.Generate)
		api.POST("/reading/submit", readingCtrl.Submit)
		api.POST("/translation/generate", readingCtrl.GenerateTranslation)
		api.POST("/translation/submit", readingCtrl.SubmitTranslation)

		api.GET("/attempts", historyCtrl.ListAttempts)
		api.GET("/attempts/:id", historyCtrl.GetAttempt)
		api.GET("/progress", historyCtrl.Progress)
		api.POST("/progress/analyze", historyCtrl.AnalyzeProgress)

		api.GET("/vocabulary", vocabularyCtrl.List)
		api.POST("/vocabulary", vocabularyCtrl.Add)
		api.DELETE("/vocabulary/:id", vocabularyCtrl.Delete)

		api.GET("/events", eventsCtrl.Stream)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Session hydration runs in the background; requests arriving
			// before it completes see the hydrating phase, not an error.
			go sess.Hydrate()

			log.Info().Msgf("TOEIC Mate server starting on port %s", cfg.Server.Port)
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
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			// Settings writes are asynchronous; let them drain before the
			// process exits.
			sess.Flush()
			return nil
		},
	})
}

func MigrateDB(db *gorm.DB) error {
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migrations applied")
	return nil
}
