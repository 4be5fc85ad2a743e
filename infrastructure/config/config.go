package config

import (
	"fmt"
	"os"
	"strconv"
)

// Catalog source kinds.
const (
	SourceJSON     = "json"
	SourceDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Catalog source configuration. SourceJSON reads/fetches the two JSON
	// documents produced by the scraping pipeline; SourceDynamoDB reads the
	// same records from the catalog table.
	CatalogSource string
	CoursesURL    string
	ProgramsURL   string

	// AWS configuration. SessionsTable switches sessions from process
	// memory to DynamoDB; the Lambda deployment requires it so the HTTP
	// and WebSocket functions share one session space.
	AWSRegion        string
	CatalogTable     string
	SessionsTable    string
	ConnectionsTable string
	EventBusName     string

	// WebSocket configuration
	WebSocketEndpoint string

	// Session configuration
	SessionTTLMinutes int

	// Query cache TTL in seconds
	CacheTTL int

	// Logging
	LogLevel string

	// Authentication (admin endpoints)
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		CatalogSource: getEnv("CATALOG_SOURCE", SourceJSON),
		CoursesURL:    getEnv("COURSES_URL", "data/courses_parsed.json"),
		ProgramsURL:   getEnv("PROGRAMS_URL", "data/programs.json"),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		CatalogTable:     getEnv("CATALOG_TABLE", "coursemap-catalog"),
		SessionsTable:    getEnv("SESSIONS_TABLE", ""),
		ConnectionsTable: getEnv("CONNECTIONS_TABLE", "coursemap-connections"),
		EventBusName:     getEnv("EVENT_BUS_NAME", ""),

		WebSocketEndpoint: getEnv("WEBSOCKET_ENDPOINT", ""),

		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 120),
		CacheTTL:          getEnvInt("CACHE_TTL_SECONDS", 300),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "coursemap-backend"),

		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceJSON:
		if c.CoursesURL == "" || c.ProgramsURL == "" {
			return fmt.Errorf("COURSES_URL and PROGRAMS_URL are required for the json catalog source")
		}
	case SourceDynamoDB:
		if c.CatalogTable == "" {
			return fmt.Errorf("CATALOG_TABLE is required for the dynamodb catalog source")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", c.CatalogSource)
	}

	if c.Environment == "production" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
