package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	// DynamoDB tables
	JobsTable   string
	StatusTable string

	// AWS
	AWSRegion string

	// Status API server
	ServerPort string

	// Optional YAML file overriding the built-in render defaults
	RenderDefaultsFile string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		JobsTable:          getEnv("DYNAMODB_TABLE", "mvp-jobs"),
		StatusTable:        getEnv("STATUS_TABLE", "mvp-status"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		RenderDefaultsFile: getEnv("RENDER_DEFAULTS_FILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
