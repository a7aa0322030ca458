package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	devBaseURL  = "http://localhost:4800"
	prodBaseURL = "https://byc-zeta.vercel.app"
)

type Config struct {
	Environment string
	API         APIConfig
	Storage     StorageConfig
	Currency    string
}

type APIConfig struct {
	// BaseURL is chosen by build mode unless BYC_API_URL overrides it.
	BaseURL           string
	Timeout           time.Duration
	RetryAttempts     int
	RetryBackoff      time.Duration
	RequestsPerSecond float64
}

type StorageConfig struct {
	// Path of the durable key-value file standing in for browser storage.
	Path string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	env := getEnv("BYC_ENV", "development")

	baseURL := os.Getenv("BYC_API_URL")
	if baseURL == "" {
		if env == "production" {
			baseURL = prodBaseURL
		} else {
			baseURL = devBaseURL
		}
	}

	config := &Config{
		Environment: env,
		API: APIConfig{
			BaseURL:           baseURL,
			Timeout:           time.Duration(getEnvAsInt("BYC_HTTP_TIMEOUT", 30)) * time.Second,
			RetryAttempts:     getEnvAsInt("BYC_HTTP_RETRIES", 2),
			RetryBackoff:      time.Duration(getEnvAsInt("BYC_HTTP_RETRY_BACKOFF_MS", 1000)) * time.Millisecond,
			RequestsPerSecond: getEnvAsFloat("BYC_HTTP_RPS", 20),
		},
		Storage: StorageConfig{
			Path: getEnv("BYC_STORAGE_PATH", defaultStoragePath()),
		},
		Currency: getEnv("BYC_CURRENCY", "₦"),
	}

	return config, nil
}

// IsProduction reports whether debug logging and other development-only
// behavior should be suppressed.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".byc-storefront.json"
	}
	return home + "/.byc-storefront.json"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
