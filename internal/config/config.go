package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Assistant AssistantConfig
	Tracing   TracingConfig
	Keys      APIKeys
}

type AppConfig struct {
	Name               string
	Port               string
	Environment        string
	LogFilePath        string
	WsLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration
}

type DatabaseConfig struct {
	Connection string
	Verbose    bool
}

type AssistantConfig struct {
	ConfidentThreshold float64
	UnknownThreshold   float64
	TopK               int
	MemoryLimit        int
	SessionTTL         time.Duration
	PersistTimeout     time.Duration
	WarmupWindow       time.Duration
	UnknownLogLimit    int
	// RandomTemplates picks response variants at random instead of the first.
	RandomTemplates bool
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type APIKeys struct {
	// AdminJWTSecret guards the admin endpoints; empty disables the check.
	AdminJWTSecret string
	EventsTopic    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "shopping-assistant-be"),
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			WsLogFilePath:      getEnv("WS_LOG_FILE_PATH", "logs/ws.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
			ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Verbose:    getEnvAsBool("DB_VERBOSE", false),
		},
		Assistant: AssistantConfig{
			ConfidentThreshold: getEnvAsFloat("ASSISTANT_CONFIDENT_THRESHOLD", 0.4),
			UnknownThreshold:   getEnvAsFloat("ASSISTANT_UNKNOWN_THRESHOLD", 0.2),
			TopK:               getEnvAsInt("ASSISTANT_TOP_K", 3),
			MemoryLimit:        getEnvAsInt("ASSISTANT_MEMORY_LIMIT", 5),
			SessionTTL:         getEnvAsDuration("ASSISTANT_SESSION_TTL", 24*time.Hour),
			PersistTimeout:     getEnvAsDuration("ASSISTANT_PERSIST_TIMEOUT", 2*time.Second),
			WarmupWindow:       getEnvAsDuration("ASSISTANT_WARMUP_WINDOW", 7*24*time.Hour),
			UnknownLogLimit:    getEnvAsInt("ASSISTANT_UNKNOWN_LOG_LIMIT", 50),
			RandomTemplates:    getEnvAsBool("ASSISTANT_RANDOM_TEMPLATES", false),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("TRACING_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Keys: APIKeys{
			AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
			EventsTopic:    getEnv("EVENTS_TOPIC_NAME", "assistant.events"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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

// getEnvAsDuration accepts Go duration strings ("90s", "24h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
