package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Telegram
	TelegramBotToken string
	PollTimeoutSecs  int
	// Database
	DBUrl string
	// Gemini
	GeminiAPIKey string
	GeminiModel  string
	// HR manager chat that receives completed-interview reports.
	// Zero means notifications are skipped.
	HRChatID int64
	// Admin identity allowed to manage vacancies via the bot.
	// Defaults to HRChatID when unset.
	AdminChatID int64
	// HTTP admin API
	HTTPPort  string
	JWTSecret string
	// Redis (optional, backs the vacancy wizard state)
	RedisURL      string
	RedisPassword string
	// Rate limiting for inbound Telegram traffic
	RateLimitPerMinute int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		PollTimeoutSecs:    getEnvInt("POLL_TIMEOUT_SECONDS", 30),
		DBUrl:              getEnv("DATABASE_URL", ""),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		HRChatID:           getEnvInt64("HR_CHAT_ID", 0),
		AdminChatID:        getEnvInt64("ADMIN_CHAT_ID", 0),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 20),
	}

	if cfg.AdminChatID == 0 {
		cfg.AdminChatID = cfg.HRChatID
	}

	// Basic validation to avoid confusing failures later
	if cfg.TelegramBotToken == "" {
		log.Println("WARNING: TELEGRAM_BOT_TOKEN is missing. Bot will fail to start.")
	}
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.HRChatID == 0 {
		log.Println("WARNING: HR_CHAT_ID not configured. Completed-interview notifications will be skipped.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Vacancy wizard state will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvInt64 returns an int64 environment variable or fallback if not set/invalid
func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return fallback
}
