package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"wordtrainer/internal/config"
	"wordtrainer/internal/repository/sqlite"
	"wordtrainer/internal/service"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	repo, err := sqlite.New(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer repo.Close()

	words := service.NewWordsService(repo, logger)
	if err := words.Open(); err != nil {
		logger.Fatal("Failed to load word store", zap.Error(err))
	}

	practice := service.NewPracticeService(words, logger)

	root := newRootCmd(words, practice, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds a quiet production logger; WORDTRAINER_DEBUG enables
// full development output
func newLogger() (*zap.Logger, error) {
	if os.Getenv("WORDTRAINER_DEBUG") != "" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
