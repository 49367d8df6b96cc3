package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/warekit/warehouse-layout/api-gateway/config"
	"github.com/warekit/warehouse-layout/api-gateway/health"
	"github.com/warekit/warehouse-layout/api-gateway/middleware"
	"github.com/warekit/warehouse-layout/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
}

// Routes holds all route definitions. The services enforce auth per
// endpoint (template browsing and previews are public), so the gateway
// only resolves identity headers via optional auth.
var Routes = []RouteDefinition{
	{
		Prefix:      "/api/v1/templates",
		ServiceName: "template",
		Description: "Warehouse layout templates (list, detect, duplicate, QR)",
	},
	{
		Prefix:      "/api/v1/warehouses",
		ServiceName: "warehouse",
		Description: "Warehouse configs, apply flow and locations",
	},
	{
		Prefix:      "/api/v1/locations",
		ServiceName: "warehouse",
		Description: "Direct location access by ID",
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Gateway internals (circuit breakers, load balancers)
	app.Get("/gateway/stats", func(c *fiber.Ctx) error {
		lbStats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			lbStats[name] = lb.GetStats()
		}
		return c.JSON(fiber.Map{
			"circuit_breakers": cbManager.GetAllStats(),
			"load_balancers":   lbStats,
		})
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Warehouse Layout API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy, redisClient)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, redisClient *redis.Client) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	middlewares := []fiber.Handler{
		middleware.OptionalAuthMiddleware(),
		middleware.InvalidationMiddleware(redisClient),
	}

	// Apply and setup regenerate every location row, so they get a
	// stricter limit. Registered before the wildcard so they match first.
	if route.Prefix == "/api/v1/warehouses" && redisClient != nil {
		strict := append([]fiber.Handler{middleware.ApplyRateLimiter(redisClient)}, middlewares...)
		app.Post("/api/v1/warehouses/:warehouseId/apply", append(strict, handler)...)
		app.Post("/api/v1/warehouses/:warehouseId/setup", append(strict, handler)...)
	}

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	app.All(route.Prefix, append(middlewares, handler)...)
}
