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
	Payment  PaymentConfig
	Answer   AnswerConfig
}

type AppConfig struct {
	Port              string
	BaseURL           string
	Environment       string
	LogFilePath       string
	NatsURL           string
	RedisURL          string
	BodyLimitMB       int
	RequestTimeoutSec int
	// HostnameLabel overrides the os hostname in the status response,
	// useful behind a load balancer.
	HostnameLabel   string
	SuperAdminToken string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Email    string
	Password string
}

type PaymentConfig struct {
	MidtransServerKey string
	Production        bool
}

type AnswerConfig struct {
	MaxAnswers    int
	MaxInlineText int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:              getEnv("APP_PORT", "5050"),
			BaseURL:           getEnv("APP_BASE_URL", "http://localhost:5050"),
			Environment:       getEnv("GO_ENV", "development"),
			LogFilePath:       getEnv("LOG_FILE_PATH", "app.log.csv"),
			NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
			BodyLimitMB:       getEnvAsInt("BODY_LIMIT_MB", 10),
			RequestTimeoutSec: getEnvAsInt("REQUEST_TIMEOUT_SEC", 30),
			HostnameLabel:     getEnv("HOSTNAME_LABEL", ""),
			SuperAdminToken:   getEnv("SUPER_ADMIN_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Email:    getEnv("SMTP_EMAIL", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		},
		Payment: PaymentConfig{
			MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
			Production:        getEnv("MIDTRANS_ENV", "sandbox") == "production",
		},
		Answer: AnswerConfig{
			MaxAnswers:    getEnvAsInt("MAX_ANSWERS", 50),
			MaxInlineText: getEnvAsInt("MAX_INLINE_TEXT", 150000),
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
