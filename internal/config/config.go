// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Token     TokenConfig
	RateLimit RateLimitConfig
	APIKey    string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
	File  string // Optional rotating log file, stdout only when empty
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// TokenConfig holds bearer token settings
type TokenConfig struct {
	Secret string
	Expiry time.Duration // 0 means tokens never expire
}

// RateLimitConfig holds per-IP request limits
type RateLimitConfig struct {
	RequestsPerMinute int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	if err := loadDatabase(cfg, ""); err != nil {
		return nil, err
	}

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel
	cfg.Logging.File = os.Getenv("LOG_FILE")

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Token configuration
	if err := loadToken(cfg, ""); err != nil {
		return nil, err
	}

	// Rate limit configuration
	rateLimitStr := os.Getenv("RATE_LIMIT_PER_MINUTE")
	if rateLimitStr == "" {
		rateLimitStr = "100"
	}
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil || rateLimit <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %q", rateLimitStr)
	}
	cfg.RateLimit.RequestsPerMinute = rateLimit

	// API Key configuration (optional, for the token cleaning endpoint)
	cfg.APIKey = os.Getenv("API_KEY")

	return cfg, nil
}

// loadDatabase reads the database settings. All of them are required.
func loadDatabase(cfg *Config, prefix string) error {
	dbHost := os.Getenv(prefix + "DB_HOST")
	if dbHost == "" {
		return fmt.Errorf("%sDB_HOST is required", prefix)
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv(prefix + "DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("%sDB_PORT is required", prefix)
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid %sDB_PORT: %w", prefix, err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv(prefix + "DB_USER")
	if dbUser == "" {
		return fmt.Errorf("%sDB_USER is required", prefix)
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv(prefix + "DB_PASSWORD")
	if dbPassword == "" {
		return fmt.Errorf("%sDB_PASSWORD is required", prefix)
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv(prefix + "DB_NAME")
	if dbName == "" {
		return fmt.Errorf("%sDB_NAME is required", prefix)
	}
	cfg.Database.DBName = dbName

	return nil
}

// loadToken reads the token secret and lifetime
func loadToken(cfg *Config, prefix string) error {
	secret := os.Getenv(prefix + "TOKEN_SECRET")
	if secret == "" {
		return fmt.Errorf("%sTOKEN_SECRET is required", prefix)
	}
	cfg.Token.Secret = secret

	expiryStr := os.Getenv(prefix + "TOKEN_EXPIRY")
	if expiryStr == "" {
		expiryStr = "0s" // tokens live until logout
	}
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		return fmt.Errorf("invalid %sTOKEN_EXPIRY: %w", prefix, err)
	}
	if expiry < 0 {
		return fmt.Errorf("invalid %sTOKEN_EXPIRY: must not be negative", prefix)
	}
	cfg.Token.Expiry = expiry

	return nil
}

// parseOrigins parses comma-separated origins, allowing all origins when none are given
func parseOrigins(corsOrigins string) []string {
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&multiStatements=true",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
