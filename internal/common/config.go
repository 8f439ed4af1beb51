package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig
	LLM     LLMConfig
	Cascade CascadeConfig
}

// CatalogConfig holds catalog-store configuration
type CatalogConfig struct {
	Path string
}

// LLMConfig holds text-generation configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// CascadeConfig holds cascade thresholds and payload bounds
type CascadeConfig struct {
	PriceListThresholdL1 int // validated products for Level 1 to short-circuit
	PriceListThresholdL2 int
	RequestThreshold     int // validated items for any client-request level
	MaxGridRows          int // row cap applied by the tabular reader
	AuditPass            bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_DB", "products.db"),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Cascade: CascadeConfig{
			PriceListThresholdL1: getEnvAsInt("CASCADE_L1_THRESHOLD", 5),
			PriceListThresholdL2: getEnvAsInt("CASCADE_L2_THRESHOLD", 3),
			RequestThreshold:     getEnvAsInt("CASCADE_REQUEST_THRESHOLD", 1),
			MaxGridRows:          getEnvAsInt("GRID_MAX_ROWS", 500),
			AuditPass:            getEnvAsBool("CASCADE_AUDIT_PASS", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration. The LLM key is allowed to be
// empty: the cascade then runs with the heuristic level only.
func (c *Config) Validate() error {
	if c.Catalog.Path == "" {
		return NewAppError("CONFIG_ERROR", "CATALOG_DB is required", ErrInvalidInput)
	}
	if c.Cascade.MaxGridRows <= 0 {
		return NewAppError("CONFIG_ERROR", "GRID_MAX_ROWS must be positive", ErrInvalidInput)
	}
	if c.Cascade.PriceListThresholdL1 < c.Cascade.PriceListThresholdL2 {
		return NewAppError("CONFIG_ERROR", "CASCADE_L1_THRESHOLD must be >= CASCADE_L2_THRESHOLD", ErrInvalidInput)
	}
	return nil
}
