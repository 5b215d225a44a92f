package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the vistoria service.
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Port string

	// Auth
	JWTSecret string

	// Report rendering
	PublicBaseURL string
	LogoPath      string
	TemplatePath  string
	RenderTimeout time.Duration

	// Upload ceilings, enforced before the submission reaches the validator
	MaxFileSize    int64
	MaxRequestSize int64
	MaxFiles       int
	MaxParts       int

	// Logging
	LogLevel string
}

// Load loads configuration from the environment, reading a local .env file
// first when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "vistoria"),
		DBPassword: getEnv("DB_PASSWORD", "secret"),
		DBName:     getEnv("DB_NAME", "condomed"),

		Port: getEnv("PORT", "3000"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		LogoPath:      getEnv("LOGO_PATH", "/img/logo%20Condomed.png"),
		TemplatePath:  getEnv("TEMPLATE_PATH", "templates/report-template.html"),
		RenderTimeout: getDurationEnv("RENDER_TIMEOUT", 60*time.Second),

		MaxFileSize:    getInt64Env("MAX_FILE_SIZE", 5<<20),
		MaxRequestSize: getInt64Env("MAX_REQUEST_SIZE", 40<<20),
		MaxFiles:       getIntEnv("MAX_FILES", 5),
		MaxParts:       getIntEnv("MAX_PARTS", 3000),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64Env gets a 64-bit integer environment variable or returns a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
