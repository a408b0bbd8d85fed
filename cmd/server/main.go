package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"larp-server/internal/config"
	"larp-server/internal/database"
	"larp-server/internal/handler"
	appMiddleware "larp-server/internal/middleware"
	"larp-server/internal/messaging"
	"larp-server/internal/repository"
	"larp-server/internal/service"
	"larp-server/pkg/authutils"
	appLogger "larp-server/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	log.Println("Starting LARP server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := appLogger.New(appLogger.Config{Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	dbPool, err := database.NewPool(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()
	logger.Info("Connected to PostgreSQL")

	migrator := database.NewMigrator(dbPool, logger)
	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := migrator.Up(migrateCtx); err != nil {
		cancelMigrate()
		logger.Fatal("Failed to apply database migrations", zap.Error(err))
	}
	cancelMigrate()
	logger.Info("Database migrations applied")

	rabbitConn, err := connectRabbitMQ(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rabbitConn.Close()
	logger.Info("Connected to RabbitMQ")

	publisher, err := messaging.NewRabbitMQNotificationPublisher(rabbitConn, cfg.NotificationQueueName, logger)
	if err != nil {
		logger.Fatal("Failed to create notification publisher", zap.Error(err))
	}

	verifier, err := authutils.NewJWTVerifier(cfg.JWTSecret, logger)
	if err != nil {
		logger.Fatal("Failed to create JWT verifier", zap.Error(err))
	}

	txManager := repository.NewTxManager(dbPool, logger)
	stepRepo := repository.NewPgStepRepository(logger)
	choiceRepo := repository.NewPgChoiceRepository(logger)
	answerRepo := repository.NewPgAnswerRepository(logger)
	characterRepo := repository.NewPgCharacterRepository(logger)
	larpRepo := repository.NewPgLarpRepository(logger)
	inscriptionRepo := repository.NewPgInscriptionRepository(logger)
	profileRepo := repository.NewPgProfileRepository(logger)

	backgroundService := service.NewBackgroundService(dbPool, txManager, characterRepo, stepRepo, choiceRepo, answerRepo, larpRepo, publisher, logger)
	catalogService := service.NewCatalogService(dbPool, txManager, stepRepo, choiceRepo, larpRepo, logger)
	characterService := service.NewCharacterService(dbPool, characterRepo, larpRepo, inscriptionRepo, publisher, logger)
	enrollmentService := service.NewEnrollmentService(dbPool, larpRepo, inscriptionRepo, logger)
	profileService := service.NewProfileService(dbPool, profileRepo, larpRepo, inscriptionRepo, logger)

	h := handler.NewHandler(backgroundService, catalogService, characterService, enrollmentService, profileService, verifier, logger)

	e := echo.New()
	e.Validator = handler.NewCustomValidator()
	e.Use(appMiddleware.EchoZapLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	h.RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	logger.Info("LARP server listening", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown of HTTP server failed", zap.Error(err))
	}

	log.Println("LARP server stopped")
}

// connectRabbitMQ dials the broker with a few retries so the server
// survives the broker starting slightly later in docker-compose.
func connectRabbitMQ(url string, logger *zap.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 5
	retryDelay := 5 * time.Second
	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Duration("retry_delay", retryDelay),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, err
}
