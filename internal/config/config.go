package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Scoring   ScoringConfig
	Realtime  RealtimeConfig
	Ticketing TicketingConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port                string
	Environment         string
	LogFilePath         string
	RealtimeLogFilePath string
	CorsAllowedOrigins  string
	NatsURL             string
	RedisURL            string
}

type DatabaseConfig struct {
	Connection string
}

type ScoringConfig struct {
	Provider string // "openai" or "ollama"
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

type RealtimeConfig struct {
	SnapshotStore  string // "memory" or "redis"
	SessionIdleTTL time.Duration
	SendBufferSize int
}

type TicketingConfig struct {
	URL     string
	Timeout time.Duration
}

type TelemetryConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                getEnv("APP_PORT", "8000"),
			Environment:         getEnv("GO_ENV", "development"),
			LogFilePath:         getEnv("LOG_FILE_PATH", "logs/app.log"),
			RealtimeLogFilePath: getEnv("REALTIME_LOG_FILE_PATH", "logs/realtime.log"),
			CorsAllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:             getEnv("NATS_URL", ""),
			RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", "file:callcenter.db"),
		},
		Scoring: ScoringConfig{
			Provider: getEnv("SCORING_PROVIDER", "openai"),
			BaseURL:  getEnv("SCORING_API_URL", "https://api.openai.com"),
			APIKey:   getEnv("SCORING_API_KEY", ""),
			Model:    getEnv("SCORING_MODEL", "gpt-4o-mini"),
			Timeout:  getEnvAsDuration("SCORING_TIMEOUT", 60*time.Second),
		},
		Realtime: RealtimeConfig{
			SnapshotStore:  strings.ToLower(getEnv("SNAPSHOT_STORE", "memory")),
			SessionIdleTTL: getEnvAsDuration("SESSION_IDLE_TTL", 30*time.Minute),
			SendBufferSize: getEnvAsInt("SEND_BUFFER_SIZE", 256),
		},
		Ticketing: TicketingConfig{
			URL:     getEnv("TICKETING_URL", ""),
			Timeout: getEnvAsDuration("TICKETING_TIMEOUT", 30*time.Second),
		},
		Telemetry: TelemetryConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts "90s"-style durations or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
