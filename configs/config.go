package configs

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Feed      FeedConfig
	Prices    PriceConfig
	Sentiment SentimentConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// FeedConfig holds signal feed configuration
type FeedConfig struct {
	// URL of the published CSV feed containing the signal rows
	URL string
	// RefreshInterval is how often a full refresh runs automatically
	RefreshInterval time.Duration
}

// PriceConfig holds market price provider configuration
type PriceConfig struct {
	// DefaultMarket selects the price source at startup: "spot" or "futures"
	DefaultMarket  string
	SpotBaseURL    string
	FuturesBaseURL string
	// RatePerSec and Burst bound outbound ticker requests (token bucket)
	RatePerSec float64
	Burst      int
}

// SentimentConfig holds Fear & Greed index configuration
type SentimentConfig struct {
	BaseURL string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Feed: FeedConfig{
			URL:             getEnv("SHEET_CSV_URL", ""),
			RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_MS", 30000)) * time.Millisecond,
		},
		Prices: PriceConfig{
			DefaultMarket:  getEnv("DEFAULT_MARKET", "spot"),
			SpotBaseURL:    getEnv("SPOT_BASE_URL", "https://api.binance.com"),
			FuturesBaseURL: getEnv("FUTURES_BASE_URL", "https://fapi.binance.com"),
			RatePerSec:     getEnvFloat("PRICE_RATE_PER_SEC", 8),
			Burst:          getEnvInt("PRICE_BURST", 1),
		},
		Sentiment: SentimentConfig{
			BaseURL: getEnv("SENTIMENT_BASE_URL", "https://api.alternative.me"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
