package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-interview-backend/config"
	"go-interview-backend/internal/ai/gemini"
	v1 "go-interview-backend/internal/delivery/http/v1"
	tghandler "go-interview-backend/internal/delivery/telegram"
	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/notification"
	"go-interview-backend/internal/report"
	memoryrepo "go-interview-backend/internal/repository/memory"
	"go-interview-backend/internal/repository/postgres"
	redisrepo "go-interview-backend/internal/repository/redis"
	"go-interview-backend/internal/telegram"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/database"
	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting interview backend", "port", cfg.HTTPPort)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	vacancyRepo := postgres.NewVacancyRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	answerRepo := postgres.NewAnswerRepository(dbPool)
	statsRepo := postgres.NewStatsRepository(dbPool)

	// 5. Setup Wizard Store (Redis with in-memory fallback)
	var wizardStore domain.WizardStore
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, vacancy wizard state kept in memory", "error", err)
		wizardStore = memoryrepo.NewWizardStore()
	} else {
		wizardStore = redisrepo.NewWizardStore(redis.Client())
	}

	// 6. Setup Gemini
	ctx := context.Background()
	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Log.Error("Failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	scorer := gemini.NewScorer(geminiClient, logger.Log)

	// 7. Setup Telegram client and outcome dispatch
	tgClient := telegram.New(cfg.TelegramBotToken)
	renderer := report.NewPDFRenderer()
	notifier := notification.NewHRNotifier(tgClient, cfg.HRChatID, logger.Log)

	// 8. Setup UseCases
	validate := validator.New()
	interviewUC := usecase.NewInterviewUsecase(
		candidateRepo, vacancyRepo, interviewRepo, answerRepo,
		scorer, scorer, tgClient, renderer, notifier, logger.Log,
	)
	adminUC := usecase.NewAdminUsecase(statsRepo, interviewRepo, vacancyRepo, renderer, validate)
	wizard := usecase.NewVacancyWizard(wizardStore)

	// 9. Start Telegram handler
	botCtx, botCancel := context.WithCancel(context.Background())
	defer botCancel()

	botHandler := tghandler.NewHandler(
		tgClient, interviewUC, adminUC, candidateRepo, vacancyRepo,
		wizard, geminiClient, domain.StaticAdminPolicy{AdminID: cfg.AdminChatID},
		cfg.RateLimitPerMinute, cfg.PollTimeoutSecs, logger.Log,
	)
	go botHandler.Run(botCtx)

	// 10. Start HTTP Server
	router := v1.NewRouter(v1.RouterDeps{
		AdminUC: adminUC,
		Config:  cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down...")

	botCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
