package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trust-fund.backend/internal/config"
	"trust-fund.backend/internal/infrastructure/email"
	"trust-fund.backend/internal/infrastructure/federation"
	"trust-fund.backend/internal/infrastructure/jobs"
	"trust-fund.backend/internal/infrastructure/repositories"
	"trust-fund.backend/internal/interfaces/http/handlers"
	"trust-fund.backend/internal/interfaces/http/middleware"
	"trust-fund.backend/internal/usecases"
	"trust-fund.backend/pkg/jwt"
	"trust-fund.backend/pkg/logger"
	"trust-fund.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			// Unique-constraint violations must surface as
			// gorm.ErrDuplicatedKey for the duplicate-email mapping.
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()
	if err := cfg.Validate(); err != nil {
		return err
	}

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService, err := jwt.New(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.RecoveryExpiry,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOtpRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	bankRepo := repositories.NewBankAccountRepository(db)

	// External identity providers
	var googleVerifier usecases.ExternalVerifier
	if cfg.Google.ClientID != "" {
		googleVerifier, err = federation.NewGoogleVerifier(federation.GoogleConfig{ClientID: cfg.Google.ClientID})
		if err != nil {
			return fmt.Errorf("failed to initialize google verifier: %w", err)
		}
	} else {
		log.Println("⚠️ GOOGLE_CLIENT_ID not set, google login disabled")
		googleVerifier = federation.Disabled("google")
	}

	var supabaseVerifier usecases.ExternalVerifier
	if cfg.Supabase.JWTSecret != "" {
		supabaseVerifier, err = federation.NewSupabaseVerifier(federation.SupabaseConfig{
			ProjectURL: cfg.Supabase.ProjectURL,
			JWTSecret:  cfg.Supabase.JWTSecret,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize supabase verifier: %w", err)
		}
	} else {
		log.Println("⚠️ SUPABASE_JWT_SECRET not set, supabase login disabled")
		supabaseVerifier = federation.Disabled("supabase")
	}

	var emailSender usecases.EmailSender
	if cfg.SMTP.Host != "" {
		emailSender, err = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize smtp sender: %w", err)
		}
	} else {
		log.Println("⚠️ SMTP_HOST not set, otp emails are logged instead of sent")
		emailSender = email.LogSender{}
	}

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, otpRepo, jwtService, emailSender, googleVerifier, supabaseVerifier, cfg.Otp.TTL)
	userUsecase := usecases.NewUserUsecase(userRepo)
	kycUsecase := usecases.NewKYCUsecase(kycRepo, userRepo)
	bankUsecase := usecases.NewBankAccountUsecase(bankRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	kycHandler := handlers.NewKYCHandler(kycUsecase)
	bankHandler := handlers.NewBankAccountHandler(bankUsecase)

	authMode := middleware.Enforce
	if cfg.Auth.Mode == "annotate" {
		authMode = middleware.Annotate
	}
	authMiddleware := middleware.AuthMiddleware(jwtService, middleware.AuthConfig{Mode: authMode})

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupJob := jobs.NewOtpCleanupJob(otpRepo)
	go cleanupJob.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.StripInboundIdentity())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", middleware.MetricsHandler())

	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		userHandler:    userHandler,
		kycHandler:     kycHandler,
		bankHandler:    bankHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		cleanupJob.Stop()
		cancel()
	}()

	log.Printf("🚀 Trust-Fund Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
