// Package config loads simulator configuration from the environment.
// Configuration is read once at startup into an explicit struct that is
// passed into the generator and the sink adapter; core logic never
// consults the environment directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kwalsh/wxsim/internal/log"
)

// Config holds all runtime settings for the simulator.
type Config struct {
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Interval is the pause between generated readings.
	Interval time.Duration

	// Startup connection retry policy.
	ConnectMaxRetries int
	ConnectRetryDelay time.Duration

	// StatusAddr enables the HTTP status endpoint when non-empty,
	// e.g. ":8080".
	StatusAddr string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.GetSugaredLogger().Debugf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		DBHost:     getenvDefault("DB_HOST", "localhost"),
		DBName:     getenvDefault("DB_NAME", "weather_db"),
		DBUser:     getenvDefault("DB_USER", "weather_user"),
		DBPassword: getenvDefault("DB_PASSWORD", "weather_pass"),
		StatusAddr: os.Getenv("STATUS_ADDR"),
	}

	port, err := getenvInt("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.DBPort = port

	// Generation interval is expressed in whole seconds, default 1.
	intervalSec, err := getenvInt("GENERATION_INTERVAL", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid GENERATION_INTERVAL: %w", err)
	}
	if intervalSec < 1 {
		return nil, fmt.Errorf("GENERATION_INTERVAL must be at least 1 second, got %d", intervalSec)
	}
	cfg.Interval = time.Duration(intervalSec) * time.Second

	retries, err := getenvInt("DB_CONNECT_MAX_RETRIES", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_MAX_RETRIES: %w", err)
	}
	cfg.ConnectMaxRetries = retries

	delayStr := getenvDefault("DB_CONNECT_RETRY_DELAY", "2s")
	delay, err := time.ParseDuration(delayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_RETRY_DELAY: %w", err)
	}
	cfg.ConnectRetryDelay = delay

	return cfg, nil
}

// DSN returns the PostgreSQL connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return n, nil
}
