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

	"payzen.backend/internal/config"
	"payzen.backend/internal/infrastructure/blockchain"
	"payzen.backend/internal/infrastructure/jobs"
	"payzen.backend/internal/infrastructure/repositories"
	"payzen.backend/internal/interfaces/http/handlers"
	"payzen.backend/internal/interfaces/http/middleware"
	"payzen.backend/internal/usecases"
	"payzen.backend/pkg/jwt"
	"payzen.backend/pkg/logger"
	"payzen.backend/pkg/redis"
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
		})
	}
	newGateway = blockchain.NewGateway
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB   = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
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

	// Initialize JWT service
	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	// Initialize chain gateway
	gateway, err := newGateway(cfg.Blockchain.RPCURL, cfg.Blockchain.USDCContract, cfg.Blockchain.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize chain gateway: %w", err)
	}
	defer gateway.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	nonceRepo := repositories.NewNonceRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	linkRepo := repositories.NewPaymentLinkRepository(db)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, nonceRepo, jwtService, cfg.Blockchain.NonceTTL)
	paymentUsecase := usecases.NewPaymentUsecase(txRepo, linkRepo, userRepo, gateway, cfg.Server.PublicURL)
	dashboardUsecase := usecases.NewDashboardUsecase(txRepo, gateway)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupJob := jobs.NewNonceCleanupJob(nonceRepo, cfg.Blockchain.NonceCleanupInt)
	go cleanupJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      authHandler,
		paymentHandler:   paymentHandler,
		dashboardHandler: dashboardHandler,
		authMiddleware:   middleware.AuthMiddleware(jwtService),
		rateLimit:        middleware.RateLimitMiddleware(cfg.Security.RateLimitWindow, cfg.Security.RateLimitMax),
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

	// Start server
	log.Printf("🚀 PayZen Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
