package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration. Instance lists are
// comma-separated so a service can run behind several replicas.
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"template": {
				Name:        "template-service",
				Instances:   splitURLs(getEnv("TEMPLATE_SERVICE_URLS", "http://localhost:8081")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"warehouse": {
				Name:        "warehouse-service",
				Instances:   splitURLs(getEnv("WAREHOUSE_SERVICE_URLS", "http://localhost:8082")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

func splitURLs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
