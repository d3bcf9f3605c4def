package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/DasoTD/cppAuth/internal/auth"
	"github.com/DasoTD/cppAuth/internal/config"
	"github.com/DasoTD/cppAuth/internal/database"
	"github.com/DasoTD/cppAuth/internal/handlers"
	"github.com/DasoTD/cppAuth/internal/repositories"
	"github.com/DasoTD/cppAuth/internal/services"
	"github.com/DasoTD/cppAuth/pkg/utils"
)

func init() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL environment variable '%s', defaulting to Info", logLevelStr)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, assuming environment variables are set.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories and the in-memory refresh token store. The store is
	// injected into the issuer and the auth service; both must share the
	// same instance for rotation to work.
	userRepo := repositories.NewPostgresUserRepository(db)
	ledgerRepo := repositories.NewPostgresLedgerRepository(db)
	refreshStore := repositories.NewMemoryRefreshTokenStore()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, refreshStore)

	authService := services.NewAuthService(userRepo, refreshStore, issuer)
	bankService := services.NewBankService(ledgerRepo)

	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	bankHandler := handlers.NewBankHandler(bankService)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestLogger())
	router.Use(utils.NewRateLimiter(120).Middleware())

	router.GET("/health", healthHandler.HealthCheck)

	// Public authentication routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/refresh", authHandler.Refresh)

	// Protected routes behind the JWT gate
	api := router.Group("/api")
	api.Use(auth.JwtAuthMiddleware(issuer))
	{
		api.GET("/profile", authHandler.GetProfile)
		api.GET("/balance", bankHandler.GetBalance)
		api.POST("/deposit", bankHandler.Deposit)
		api.POST("/withdraw", bankHandler.Withdraw)
		api.POST("/transfer", bankHandler.Transfer)
	}

	logrus.Infof("Server starting on port %s", cfg.AppPort)
	log.Fatal(router.Run(fmt.Sprintf(":%s", cfg.AppPort)))
}
