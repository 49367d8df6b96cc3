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

	"github.com/warekit/warehouse-layout/internal/location"
	locationDelivery "github.com/warekit/warehouse-layout/internal/location/delivery/http"
	locationDomain "github.com/warekit/warehouse-layout/internal/location/domain"
	"github.com/warekit/warehouse-layout/internal/warehouse"
	"github.com/warekit/warehouse-layout/internal/warehouse/client"
	httpDelivery "github.com/warekit/warehouse-layout/internal/warehouse/delivery/http"
	"github.com/warekit/warehouse-layout/internal/warehouse/domain"
	"github.com/warekit/warehouse-layout/kafka"
	"github.com/warekit/warehouse-layout/pkg/database"
	"github.com/warekit/warehouse-layout/pkg/logger"
	"github.com/warekit/warehouse-layout/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "warehouse-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting warehouse service")

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
		DBName:   getEnv("DB_NAME", "warehousedb"),
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

	// Run migrations. Configs and locations live in the same database;
	// apply updates both in one flow.
	if err := db.AutoMigrate(&domain.WarehouseConfig{}, &locationDomain.Location{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Template service client
	templateURL := getEnv("TEMPLATE_SERVICE_URL", "http://localhost:8081")
	resolver := client.NewTemplateServiceClient(templateURL)

	// Kafka publisher, optional
	var publisher kafka.EventPublisher = kafka.NopPublisher{}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		p, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, events disabled")
		} else {
			defer p.Close()
			publisher = p
		}
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, events disabled")
	}

	// Location generator and live-area projection back the apply flow
	generator, err := location.InitializeGenerator(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize location generator")
	}
	areaReader, err := location.InitializeAreaReader(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize area reader")
	}

	// Initialize handlers with Wire DI
	warehouseHandler, err := warehouse.InitializeHTTPHandler(db, resolver, generator, areaReader, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize warehouse handler")
	}
	locationHandler, err := location.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize location handler")
	}

	logger.Logger.Info().
		Str("template_service", templateURL).
		Msg("Warehouse handlers initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	go startHTTPServer(warehouseHandler, locationHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(warehouseHandler *httpDelivery.WarehouseHandler, locationHandler *locationDelivery.LocationHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes. Location routes carry static suffixes, so they go
	// first.
	locationHandler.RegisterRoutes(router)
	warehouseHandler.RegisterRoutes(router)

	// Health check endpoint
	warehouseHandler.RegisterHealthCheck(router, db)

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
