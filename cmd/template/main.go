package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/warekit/warehouse-layout/internal/template"
	"github.com/warekit/warehouse-layout/internal/template/client"
	httpDelivery "github.com/warekit/warehouse-layout/internal/template/delivery/http"
	"github.com/warekit/warehouse-layout/internal/template/domain"
	"github.com/warekit/warehouse-layout/internal/template/usecase/command"
	"github.com/warekit/warehouse-layout/kafka"
	"github.com/warekit/warehouse-layout/pkg/database"
	"github.com/warekit/warehouse-layout/pkg/logger"
	"github.com/warekit/warehouse-layout/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "template-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting template service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "templatedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&domain.WarehouseTemplate{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Format detection service (optional)
	detectionURL := getEnv("DETECTION_SERVICE_URL", "http://localhost:8090")
	detector := client.NewDetectionClient(detectionURL)

	// Initialize handler with Wire DI
	handler, err := template.InitializeHTTPHandler(db, detector)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().
		Str("detection_service", detectionURL).
		Msg("Template handler initialized")

	// Consume template-applied events to keep usage counters current
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		startUsageConsumer(db, strings.Split(brokers, ","))
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, usage counters will not track applies")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8081")
	go startHTTPServer(handler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startUsageConsumer(db *gorm.DB, brokers []string) {
	recordUsage, err := template.InitializeRecordUsageHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize usage handler")
	}

	consumer, err := kafka.NewConsumer(brokers, "template-service", []string{kafka.TopicTemplateApplied})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer, continuing without it")
		return
	}

	consumer.RegisterHandler(kafka.EventTypeTemplateApplied, func(ctx context.Context, event kafka.TemplateAppliedEvent) error {
		return recordUsage.Handle(command.RecordUsageCommand{TemplateID: event.TemplateID})
	})

	if err := consumer.Start(context.Background()); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
	}
}

func startHTTPServer(handler *httpDelivery.TemplateHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
