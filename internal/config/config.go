package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// defaultJWTSecret is the documented development fallback for JWT_SECRET.
// Running with it in production is a known weakness, which is why loading
// it logs a warning instead of silently proceeding.
const defaultJWTSecret = "supersecretkey"

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig
	AppPort   string
	JWTSecret []byte
}

// DatabaseConfig holds database specific configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		appPort = "8080"
		logrus.Warnf("APP_PORT not set, defaulting to %s", appPort)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		logrus.Warn("JWT_SECRET not set. Using insecure fallback secret!")
	} else {
		logrus.Info("Loaded JWT_SECRET from environment.")
	}

	return &Config{
		AppPort:   appPort,
		JWTSecret: []byte(jwtSecret),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "cppauth"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
