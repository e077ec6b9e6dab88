package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type WeatherConfig struct {
	APIKey string
}

// IsConfigured returns true if the weatherstack key is present
func (c WeatherConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// IsConfigured returns true if the Anthropic key is present
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type AlertConfig struct {
	SlackWebhookURL string
}

// IsConfigured returns true if Slack error alerts can be delivered
func (c AlertConfig) IsConfigured() bool {
	return c.SlackWebhookURL != ""
}

type HealthConfig struct {
	Port               string
	CORSAllowedOrigins string // Optional with default "*"
}

// IsConfigured returns true if the health server should be started
func (c HealthConfig) IsConfigured() bool {
	return c.Port != ""
}

type AppConfig struct {
	// Core configuration
	Token             string // Required
	Prefix            string // Optional with default "!"
	Environment       string
	WorkerCount       int
	EnrichmentTimeout time.Duration

	// Optional integrations
	WeatherConfig   WeatherConfig
	AnthropicConfig AnthropicConfig
	AlertConfig     AlertConfig
	HealthConfig    HealthConfig
}

// LoadConfig reads envFile if present, then the process environment
func LoadConfig(envFile string) (*AppConfig, error) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️ Could not load %s file, continuing with system env vars", envFile)
	}

	token, err := getEnvRequired("TOKEN")
	if err != nil {
		return nil, err
	}

	workerCount, err := strconv.Atoi(getEnvWithDefault("WORKER_COUNT", "4"))
	if err != nil || workerCount < 1 {
		return nil, fmt.Errorf("WORKER_COUNT must be a positive integer, got %q", os.Getenv("WORKER_COUNT"))
	}

	enrichmentTimeout, err := time.ParseDuration(getEnvWithDefault("ENRICHMENT_TIMEOUT", "10s"))
	if err != nil || enrichmentTimeout <= 0 {
		return nil, fmt.Errorf("ENRICHMENT_TIMEOUT must be a positive duration, got %q", os.Getenv("ENRICHMENT_TIMEOUT"))
	}

	config := &AppConfig{
		Token:             token,
		Prefix:            getEnvWithDefault("PREFIX", "!"),
		Environment:       getEnvWithDefault("ENVIRONMENT", "dev"),
		WorkerCount:       workerCount,
		EnrichmentTimeout: enrichmentTimeout,

		WeatherConfig: WeatherConfig{
			APIKey: os.Getenv("WEATHERSTACK_KEY"),
		},
		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  os.Getenv("ANTHROPIC_MODEL"),
		},
		AlertConfig: AlertConfig{
			SlackWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
		HealthConfig: HealthConfig{
			Port:               os.Getenv("HEALTH_PORT"),
			CORSAllowedOrigins: getEnvWithDefault("HEALTH_CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	// Log which integrations are configured
	if config.WeatherConfig.IsConfigured() {
		log.Printf("✅ Weather provider configured")
	} else {
		log.Printf("⚠️ WEATHERSTACK_KEY not set - weather command will be disabled")
	}

	if config.AnthropicConfig.IsConfigured() {
		log.Printf("✅ Anthropic assistant configured")
	} else {
		log.Printf("⚠️ ANTHROPIC_API_KEY not set - ask command will be disabled")
	}

	if config.AlertConfig.IsConfigured() {
		log.Printf("✅ Slack error alerts configured")
	} else {
		log.Printf("⚠️ SLACK_ALERT_WEBHOOK_URL not set - error alerts will only be logged")
	}

	if config.HealthConfig.IsConfigured() {
		log.Printf("✅ Health server will listen on port %s", config.HealthConfig.Port)
	} else {
		log.Printf("⚠️ HEALTH_PORT not set - health server disabled")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
