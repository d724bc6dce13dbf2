package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration loaded from the environment.
type Config struct {
	TelegramToken   string
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	DeepSeekModel   string
	DBConnString    string
	SubscribersFile string
	SourcesFile     string
	ReportHour      int
	ReportMinute    int
	LogLevel        string
}

// FromEnv loads configuration from environment variables, reading a .env file
// first if one exists. TELEGRAM_TOKEN is the only required variable.
// DEEPSEEK_API_KEY is optional; without it the news digest degrades to a fixed
// notice. Setting DATABASE_URL switches persistence from JSON files to
// Postgres.
func FromEnv() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		DeepSeekAPIKey:  os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekBaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		DeepSeekModel:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		DBConnString:    os.Getenv("DATABASE_URL"),
		SubscribersFile: getEnv("SUBSCRIBERS_FILE", "subscribers.json"),
		SourcesFile:     getEnv("SOURCES_FILE", "user_sources.json"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	if c.TelegramToken == "" {
		return nil, errors.New("TELEGRAM_TOKEN is not set")
	}

	var err error
	if c.ReportHour, err = getEnvInt("REPORT_HOUR", 9); err != nil {
		return nil, err
	}
	if c.ReportMinute, err = getEnvInt("REPORT_MINUTE", 0); err != nil {
		return nil, err
	}
	if c.ReportHour < 0 || c.ReportHour > 23 || c.ReportMinute < 0 || c.ReportMinute > 59 {
		return nil, fmt.Errorf("invalid report time %02d:%02d", c.ReportHour, c.ReportMinute)
	}
	return c, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}
