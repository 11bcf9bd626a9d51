package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Client   ClientConfig
	Store    StoreConfig
	Database DatabaseConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

// ClientConfig drives the taskflow shell and its transport.
type ClientConfig struct {
	ApiURL         string
	RequestTimeout time.Duration
	MaxProjects    int
}

// StoreConfig drives the devstore reference backend.
type StoreConfig struct {
	Port               string
	JwtSecret          string
	TokenTTL           time.Duration
	CorsAllowedOrigins string
	MaxProjects        int
}

type DatabaseConfig struct {
	Connection string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	// Shared by client and devstore; non-positive values mean the default.
	maxProjects := getEnvAsInt("MAX_PROJECTS", 4)
	if maxProjects <= 0 {
		maxProjects = 4
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "taskflow.log.json"),
		},
		Client: ClientConfig{
			ApiURL:         getEnv("TASKFLOW_API_URL", "http://localhost:3000"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
			MaxProjects:    maxProjects,
		},
		Store: StoreConfig{
			Port:               getEnv("APP_PORT", "3000"),
			JwtSecret:          getEnv("JWT_SECRET", "default_secret"),
			TokenTTL:           getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			MaxProjects:        maxProjects,
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
