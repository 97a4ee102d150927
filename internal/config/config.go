package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values. It is built once at process start;
// nothing reads the environment after LoadConfig returns.
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// PostgreSQL configuration
	DatabaseURL      string `json:"database_url"`
	DatabaseMaxConns int    `json:"database_max_conns"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Identity gateway (token endpoint) configuration
	GDXAuthURL     string `json:"gdx_auth_url"`
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
	AgentID        string `json:"agent_id"`

	// Data-exchange registry (profile endpoint) configuration
	DeprocAPIURL string `json:"deproc_api_url"`

	// Notification endpoint configuration
	NotifyAPIURL         string `json:"notify_api_url"`
	NotifyEnabled        bool   `json:"notify_enabled"`
	NotifyDefaultMessage string `json:"notify_default_message"`

	// Two-phase registration configuration
	RegistrationTTL time.Duration `json:"registration_ttl"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnvOrDefault("DATABASE_MAX_CONNS", "20"))
	if err != nil {
		return fmt.Errorf("invalid DATABASE_MAX_CONNS: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	registrationTTL, err := time.ParseDuration(getEnvOrDefault("REGISTRATION_TTL", "15m"))
	if err != nil {
		return fmt.Errorf("invalid REGISTRATION_TTL: %w", err)
	}

	// Upstream credentials are service-level and required; requests never
	// supply them.
	required := map[string]string{
		"GDX_AUTH_URL":    os.Getenv("GDX_AUTH_URL"),
		"DEPROC_API_URL":  os.Getenv("DEPROC_API_URL"),
		"CONSUMER_KEY":    os.Getenv("CONSUMER_KEY"),
		"CONSUMER_SECRET": os.Getenv("CONSUMER_SECRET"),
		"AGENT_ID":        os.Getenv("AGENT_ID"),
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s environment variable is required", name)
		}
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// PostgreSQL configuration
		DatabaseURL:      getEnvOrDefault("DATABASE_URL", "postgres://localhost:5432/app_login?sslmode=disable"),
		DatabaseMaxConns: maxConns,

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Identity gateway configuration
		GDXAuthURL:     required["GDX_AUTH_URL"],
		ConsumerKey:    required["CONSUMER_KEY"],
		ConsumerSecret: required["CONSUMER_SECRET"],
		AgentID:        required["AGENT_ID"],

		// Registry configuration
		DeprocAPIURL: required["DEPROC_API_URL"],

		// Notification configuration
		NotifyAPIURL:         getEnvOrDefault("NOTIFY_API_URL", ""),
		NotifyEnabled:        getEnvOrDefault("NOTIFY_ENABLED", "true") == "true",
		NotifyDefaultMessage: getEnvOrDefault("NOTIFY_DEFAULT_MESSAGE", "You have a new message"),

		// Two-phase registration configuration
		RegistrationTTL: registrationTTL,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
