package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type StorageConfig struct {
	URL           string
	ServiceKey    string
	Bucket        string
	UploadTimeout time.Duration
}

type Config struct {
	Port string

	DB           DBConfig
	RedisAddr    string
	KafkaBrokers []string

	JWTSecret     string
	JWTExpiration time.Duration

	MaxScreenshotBytes int64
	Storage            StorageConfig
}

// Load gathers configuration from the environment once so the rest of the
// process receives it by injection instead of reading ambient globals.
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "3000"),
		DB: DBConfig{
			Host:     getenv("DB_HOST", "localhost"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getenv("DB_PORT", "5432"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Storage: StorageConfig{
			URL:           os.Getenv("STORAGE_URL"),
			ServiceKey:    os.Getenv("STORAGE_SERVICE_KEY"),
			Bucket:        getenv("STORAGE_BUCKET", "screenshots"),
			UploadTimeout: 30 * time.Second,
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	expHours, err := intEnv("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return Config{}, err
	}
	cfg.JWTExpiration = time.Duration(expHours) * time.Hour

	maxMB, err := intEnv("MAX_SCREENSHOT_SIZE_MB", 5)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxScreenshotBytes = int64(maxMB) * 1024 * 1024

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
