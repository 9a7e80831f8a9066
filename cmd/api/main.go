package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"espacestage-backend/config"
	_ "espacestage-backend/docs" // swagger definitions
	v1 "espacestage-backend/internal/delivery/http/v1"
	"espacestage-backend/internal/repository/postgres"
	"espacestage-backend/internal/usecase"
	"espacestage-backend/migrations"
	"espacestage-backend/pkg/audit"
	"espacestage-backend/pkg/auth"
	"espacestage-backend/pkg/database"
	"espacestage-backend/pkg/email"
	"espacestage-backend/pkg/logger"
	"espacestage-backend/pkg/redis"
	"espacestage-backend/pkg/storage"
)

// @title           EspaceStage API
// @version         1.0
// @description     Backend for the EspaceStage internship marketplace.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	logger.Log.Info("Starting espacestage backend", "port", cfg.Port)

	auditLog, err := audit.Init("espacestage-api", cfg.Environment)
	if err != nil {
		logger.Log.Error("Failed to init audit logger", "error", err)
		os.Exit(1)
	}
	defer auditLog.Sync()

	// 3. Setup Database
	ctx := context.Background()
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.RunMigrations(migrations.FS, cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (rate limiting; the API degrades to in-memory limits
	// when unavailable)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
		}
	}

	// 5. Setup Repositories
	accountRepo := postgres.NewAccountRepository(dbPool)
	studentProfileRepo := postgres.NewStudentProfileRepository(dbPool)
	companyProfileRepo := postgres.NewCompanyProfileRepository(dbPool)
	offerRepo := postgres.NewOfferRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	reportRepo := postgres.NewReportRepository(dbPool)

	// 6. Setup collaborators
	emailService := email.NewService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - application notifications disabled")
	}

	var uploader *storage.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = storage.NewUploader(ctx, cfg)
		if err != nil {
			logger.Log.Error("Failed to init file storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("File storage not configured - uploads disabled")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// 7. Setup UseCases
	validate := validator.New()
	notifier := usecase.NewEmailNotifier(emailService, accountRepo, offerRepo)

	authUC := usecase.NewAuthUsecase(accountRepo, tokens, auditLog)
	studentProfileUC := usecase.NewStudentProfileUsecase(studentProfileRepo, validate)
	companyProfileUC := usecase.NewCompanyProfileUsecase(companyProfileRepo, validate)
	offerUC := usecase.NewOfferUsecase(offerRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, offerRepo, studentProfileRepo, notifier)
	adminUC := usecase.NewAdminUsecase(adminRepo, accountRepo, offerRepo, applicationRepo, auditLog)
	reportUC := usecase.NewReportUsecase(reportRepo)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:           authUC,
		StudentProfileUC: studentProfileUC,
		CompanyProfileUC: companyProfileUC,
		OfferUC:          offerUC,
		ApplicationUC:    applicationUC,
		AdminUC:          adminUC,
		ReportUC:         reportUC,
		Uploader:         uploader,
		Tokens:           tokens,
		Config:           cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
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
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
