package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port          int
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	SecureCookies bool

	// Database configuration
	PostgresURL    string
	PersistTimeout time.Duration

	// Page cache configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Session configuration
	JWTSecret  string
	SessionTTL time.Duration

	// Logging configuration
	LogFormat string
	LogLevel  string

	// Dashboard configuration
	ItemsPerPage int
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Get the executable directory
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not determine executable path: %v", err)
	}

	// Determine project root directory
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
	envPath := filepath.Join(projectRoot, ".env")

	// Load .env file if it exists
	if err := godotenv.Load(envPath); err != nil {
		// Try loading from current directory as fallback
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading .env file. Using environment variables.")
		} else {
			log.Println("Loaded environment variables from current directory .env file")
		}
	} else {
		log.Printf("Loaded environment variables from %s", envPath)
	}

	return fromEnv(), nil
}

// fromEnv reads every setting from the process environment
func fromEnv() *Config {
	config := &Config{
		// Server configuration
		Port:          getEnvInt("PORT", 8080),
		ReadTimeout:   getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:  getEnvDuration("WRITE_TIMEOUT", 15*time.Second),
		SecureCookies: getEnvBool("SECURE_COOKIES", false),

		// Database configuration
		PostgresURL:    os.Getenv("POSTGRES_DB_URL"),
		PersistTimeout: getEnvDuration("PERSIST_TIMEOUT", 5*time.Second),

		// Page cache configuration
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 300*time.Second),

		// Session configuration
		JWTSecret:  os.Getenv("JWT_SECRET"),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		// Logging configuration
		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),

		// Dashboard configuration
		ItemsPerPage: getEnvInt("ITEMS_PER_PAGE", 6),
	}

	// Validate critical configuration
	validateConfig(config)

	return config
}

// validateConfig checks if critical configuration values are set and logs warnings if they're missing
func validateConfig(config *Config) {
	if config.PostgresURL == "" {
		log.Println("Warning: No POSTGRES_DB_URL provided. Database connections will fail.")
	}

	if config.JWTSecret == "" {
		log.Println("Warning: No JWT_SECRET provided. Sign-in will be rejected.")
	}

	if config.RedisAddr == "" {
		log.Println("No REDIS_ADDR provided. Using in-memory page cache.")
	}

	if config.ItemsPerPage <= 0 {
		log.Printf("Invalid ITEMS_PER_PAGE %d, using default: 6", config.ItemsPerPage)
		config.ItemsPerPage = 6
	}

	if config.PersistTimeout <= 0 {
		log.Printf("Invalid PERSIST_TIMEOUT %s, using default: 5s", config.PersistTimeout)
		config.PersistTimeout = 5 * time.Second
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvDuration gets a duration from an environment variable with a default value.
// Bare integers are read as seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
