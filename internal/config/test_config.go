package config

import (
	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration for integration tests from TEST_* variables.
// If the database variables are missing, an empty Config is returned so tests can fall back
// to a default DSN.
func LoadTestConfig() (*Config, error) {
	// Try loading from project root
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	if err := loadDatabase(cfg, "TEST_"); err != nil {
		// Return empty config to allow fallback DSN in tests
		return &Config{}, nil
	}

	if err := loadToken(cfg, "TEST_"); err != nil {
		cfg.Token.Secret = "test-secret-key-for-integration-tests"
	}
	cfg.APIKey = "test-api-key"

	return cfg, nil
}
