package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-login-gateway/internal/config"
	"github.com/prefeitura-rio/app-login-gateway/internal/handlers"
	"github.com/prefeitura-rio/app-login-gateway/internal/logging"
	"github.com/prefeitura-rio/app-login-gateway/internal/middleware"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/prefeitura-rio/app-login-gateway/docs"
)

// @title           Citizen Login Gateway API
// @version         1.0
// @description     API that logs citizens into the app through the government identity gateway, retrieves their personal data from the data-exchange registry, persists it and dispatches push notifications.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @host      localhost:8080
// @BasePath  /v1

// @tag.name auth
// @tag.description Login workflow operations

// @tag.name citizen
// @tag.description Operations about citizens

// @tag.name notification
// @tag.description Push notification operations

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections (InitPostgres runs pending migrations)
	config.InitPostgres()
	config.InitRedis()

	cfg := config.AppConfig

	tokens, err := services.NewTokenClient(cfg.GDXAuthURL, cfg.ConsumerKey, cfg.ConsumerSecret, cfg.AgentID, logging.Logger)
	if err != nil {
		logging.Logger.Fatal("failed to build token client", zap.Error(err))
	}
	profiles, err := services.NewProfileClient(cfg.DeprocAPIURL, cfg.ConsumerKey, logging.Logger)
	if err != nil {
		logging.Logger.Fatal("failed to build profile client", zap.Error(err))
	}
	citizens := services.NewCitizenStore(config.DB, logging.Logger)
	pending := services.NewRegistrationStore(config.Redis, cfg.RegistrationTTL, logging.Logger)
	login := services.NewLoginService(tokens, profiles, citizens, pending, logging.Logger)
	dispatcher := services.NewDispatcher(tokens, cfg.NotifyAPIURL, cfg.ConsumerKey, cfg.NotifyDefaultMessage, cfg.NotifyEnabled, logging.Logger)

	api := handlers.New(login, dispatcher)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Health check endpoint
		v1.GET("/health", handlers.HealthCheck)

		v1.POST("/auth/login", api.Login)
		v1.POST("/citizen/register", api.Register)
		v1.GET("/citizen/:citizenId", api.GetCitizen)
		v1.POST("/notification/push", api.PushNotification)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
