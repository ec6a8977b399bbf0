package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Sources  SourcesConfig
	Quota    QuotaConfig
	Cost     CostConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JobTopicName       string
	WorkerCount        int
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	AlertEmail string
}

type AIConfig struct {
	LLMProvider   string // "ollama", "openai", etc
	LLMModel      string // e.g. "llama3", "qwen2.5"
	OllamaBaseURL string
}

type SourcesConfig struct {
	WikipediaBaseURL  string
	DictionaryBaseURL string
	CommunityBaseURL  string
	RateLimit         int // lookups per source per window
	RateWindowSec     int
	MaxInFlight       int
	BatchDelayMs      int
}

type QuotaConfig struct {
	// Blocklist entries are comma separated in CONTENT_BLOCKLIST.
	Blocklist string
}

type CostConfig struct {
	DailyThreshold   float64
	HourlyThreshold  float64
	PerCallThreshold float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JobTopicName:       getEnv("GENERATION_JOB_TOPIC_NAME", "GENERATE_VOCAB"),
			WorkerCount:        getEnvAsInt("GENERATION_WORKER_COUNT", 3),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "VocabForge"),
			AlertEmail: getEnv("COST_ALERT_EMAIL", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Sources: SourcesConfig{
			WikipediaBaseURL:  getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org/w/api.php"),
			DictionaryBaseURL: getEnv("DICTIONARY_BASE_URL", "https://api.dictionaryapi.dev/api/v2/entries/en"),
			CommunityBaseURL:  getEnv("COMMUNITY_BASE_URL", "https://api.urbandictionary.com/v0/define"),
			RateLimit:         getEnvAsInt("SOURCE_RATE_LIMIT", 30),
			RateWindowSec:     getEnvAsInt("SOURCE_RATE_WINDOW_SEC", 60),
			MaxInFlight:       getEnvAsInt("SOURCE_MAX_IN_FLIGHT", 3),
			BatchDelayMs:      getEnvAsInt("SOURCE_BATCH_DELAY_MS", 500),
		},
		Quota: QuotaConfig{
			Blocklist: getEnv("CONTENT_BLOCKLIST", ""),
		},
		Cost: CostConfig{
			DailyThreshold:   getEnvAsFloat("COST_DAILY_THRESHOLD", 10.0),
			HourlyThreshold:  getEnvAsFloat("COST_HOURLY_THRESHOLD", 2.0),
			PerCallThreshold: getEnvAsFloat("COST_PER_CALL_THRESHOLD", 1.0),
		},
	}
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
