// Package config reads process settings from the environment, loading a
// .env file first when one exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fundfolio/internal/database"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port               string
	LogLevel           logrus.Level
	Store              database.StoreOptions
	KeyVersion         string
	GeminiAPIKey       string
	GeminiModel        string
	AdvisorTimeout     time.Duration
	RecentTransactions int
}

// Load reads the configuration. A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:       getenv("PORT", "8080"),
		KeyVersion: getenv("STORE_KEY_VERSION", database.DefaultKeyVersion),
		Store: database.StoreOptions{
			Kind:          getenv("STORE_KIND", database.KindMemory),
			PostgresURL:   os.Getenv("POSTGRES_URL"),
			PostgresTable: getenv("POSTGRES_TABLE", database.DefaultTable),
			RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisPrefix:   getenv("REDIS_PREFIX", database.DefaultRedisPrefix),
		},
		GeminiAPIKey: getenv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}

	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.Store.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	secs, err := intEnv("ADVISOR_TIMEOUT", 30)
	if err != nil {
		return Config{}, err
	}
	cfg.AdvisorTimeout = time.Duration(secs) * time.Second
	if cfg.RecentTransactions, err = intEnv("RECENT_TRANSACTIONS", 10); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}
