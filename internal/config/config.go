package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"wordtrainer/internal/session"
)

// Config holds all application configuration
type Config struct {
	DBPath   string
	Practice PracticeConfig
}

// PracticeConfig holds default practice-session settings
type PracticeConfig struct {
	RotationDistance int
	MaxRequeues      int
	Match            string
}

// Load reads configuration from a .env file and environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	dbPath := os.Getenv("WORDTRAINER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "wordtrainer", "words.db")
	}

	cfg := &Config{
		DBPath: dbPath,
		Practice: PracticeConfig{
			RotationDistance: getEnvInt("WORDTRAINER_ROTATION", session.DefaultRotationDistance),
			MaxRequeues:      getEnvInt("WORDTRAINER_MAX_REQUEUES", session.DefaultMaxRequeues),
			Match:            getEnv("WORDTRAINER_MATCH", "fold"),
		},
	}

	if cfg.Practice.RotationDistance < 1 {
		return nil, fmt.Errorf("WORDTRAINER_ROTATION must be at least 1")
	}
	if cfg.Practice.MaxRequeues < 1 {
		return nil, fmt.Errorf("WORDTRAINER_MAX_REQUEUES must be at least 1")
	}
	if _, err := session.ParseMatchMode(cfg.Practice.Match); err != nil {
		return nil, fmt.Errorf("WORDTRAINER_MATCH: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
